package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/shopspring/decimal"

	"github.com/kazz187/taskmarket/internal/client"
	"github.com/kazz187/taskmarket/internal/rpc"
)

var (
	app = kingpin.New("taskmarket", "Browse, post and manage marketplace tasks")

	serverURL = app.Flag("server", "Server base URL").Envar("TASKMARKET_SERVER_URL").Default("http://localhost:3100").String()
	token     = app.Flag("token", "Session token returned by login or signup").Envar("TASKMARKET_TOKEN").String()
	noColor   = app.Flag("no-color", "Disable colored output").Bool()

	// Session commands
	loginCmd      = app.Command("login", "Log in and print a session token")
	loginEmail    = loginCmd.Arg("email", "Account email").Required().String()
	loginPassword = loginCmd.Flag("password", "Account password").Default("password").String()

	signupCmd      = app.Command("signup", "Create an account and print a session token")
	signupName     = signupCmd.Arg("name", "Display name").Required().String()
	signupEmail    = signupCmd.Arg("email", "Account email").Required().String()
	signupPassword = signupCmd.Flag("password", "Account password; omit to sign in with the demo password").String()
	signupPhone    = signupCmd.Flag("phone", "Phone number").String()
	signupLocation = signupCmd.Flag("location", "Home location").String()

	logoutCmd = app.Command("logout", "Revoke the current session token")
	whoamiCmd = app.Command("whoami", "Show the signed-in user")

	userCmd   = app.Command("user", "Show a user profile and the tasks they posted")
	userID    = userCmd.Arg("id", "User ID").Required().String()
	userTasks = userCmd.Flag("tasks", "List the tasks the user posted").Default("true").Bool()

	// Task commands
	listCmd      = app.Command("list", "List tasks")
	listCategory = listCmd.Flag("category", "Only this category").String()
	listPostedBy = listCmd.Flag("posted-by", "Only tasks posted by this user ID").String()
	listMin      = listCmd.Flag("min", "Minimum payment").String()
	listMax      = listCmd.Flag("max", "Maximum payment").String()
	listSort     = listCmd.Flag("sort", "Sort order").Default("newest").Enum("newest", "price_high", "price_low")

	showCmd = app.Command("show", "Show task details")
	showID  = showCmd.Arg("id", "Task ID").Required().String()

	createCmd         = app.Command("create", "Post a new task")
	createTitle       = createCmd.Arg("title", "Task title").Required().String()
	createDescription = createCmd.Flag("description", "Task description").Short('d').String()
	createCategory    = createCmd.Flag("category", "Task category").Default("Other").String()
	createPayment     = createCmd.Flag("payment", "Payment offered").Required().String()
	createLocation    = createCmd.Flag("location", "Where the task takes place").String()
	createDue         = createCmd.Flag("due", "Due date (RFC 3339)").String()
	createTags        = createCmd.Flag("tag", "Tag, repeatable").Strings()

	assignCmd    = app.Command("assign", "Assign an open task to a helper")
	assignID     = assignCmd.Arg("id", "Task ID").Required().String()
	assignHelper = assignCmd.Arg("helper", "Helper user ID").Required().String()

	completeCmd = app.Command("complete", "Mark an assigned task as completed")
	completeID  = completeCmd.Arg("id", "Task ID").Required().String()

	cancelCmd = app.Command("cancel", "Cancel an assigned task")
	cancelID  = cancelCmd.Arg("id", "Task ID").Required().String()

	deleteCmd = app.Command("delete", "Delete a task")
	deleteID  = deleteCmd.Arg("id", "Task ID").Required().String()
)

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))
	setupColor(*noColor)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpClient := &http.Client{Timeout: 30 * time.Second}
	tasks := client.NewTaskClient(httpClient, *serverURL, *token)
	users := client.NewUserClient(httpClient, *serverURL, *token)

	if err := run(ctx, command, tasks, users); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, tasks *client.TaskClient, users *client.UserClient) error {
	switch command {
	case loginCmd.FullCommand():
		u, tok, err := users.Login(ctx, *loginEmail, *loginPassword)
		if err != nil {
			return err
		}
		printSignedIn(u, tok)

	case signupCmd.FullCommand():
		u, tok, err := users.Signup(ctx, &rpc.SignupRequest{
			Name:     *signupName,
			Email:    *signupEmail,
			Password: *signupPassword,
			Phone:    *signupPhone,
			Location: *signupLocation,
		})
		if err != nil {
			return err
		}
		printSignedIn(u, tok)

	case logoutCmd.FullCommand():
		if err := users.Logout(ctx); err != nil {
			return err
		}
		fmt.Println("Logged out")

	case whoamiCmd.FullCommand():
		u, err := users.CurrentUser(ctx)
		if err != nil {
			return err
		}
		printUser(u)

	case userCmd.FullCommand():
		u, err := users.GetUser(ctx, *userID)
		if err != nil {
			return err
		}
		printUser(u)
		if !*userTasks {
			return nil
		}
		posted, err := tasks.ListTasks(ctx, &rpc.ListTasksRequest{PostedBy: u.ID, SortBy: "newest"})
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(bold.Sprint("Posted tasks"))
		printTaskList(posted)

	case listCmd.FullCommand():
		req, err := listRequest()
		if err != nil {
			return err
		}
		list, err := tasks.ListTasks(ctx, req)
		if err != nil {
			return err
		}
		printTaskList(list)

	case showCmd.FullCommand():
		t, err := tasks.GetTask(ctx, *showID)
		if err != nil {
			return err
		}
		printTask(t)

	case createCmd.FullCommand():
		req, err := createRequest()
		if err != nil {
			return err
		}
		t, err := tasks.CreateTask(ctx, req)
		if err != nil {
			return err
		}
		printTask(t)

	case assignCmd.FullCommand():
		t, err := tasks.AssignTask(ctx, *assignID, *assignHelper)
		if err != nil {
			return err
		}
		printTask(t)

	case completeCmd.FullCommand():
		t, err := tasks.CompleteTask(ctx, *completeID)
		if err != nil {
			return err
		}
		printTask(t)

	case cancelCmd.FullCommand():
		t, err := tasks.CancelTask(ctx, *cancelID)
		if err != nil {
			return err
		}
		printTask(t)

	case deleteCmd.FullCommand():
		if _, err := tasks.DeleteTask(ctx, *deleteID); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", *deleteID)
	}
	return nil
}

// listRequest mirrors the browse page: the price range only applies when at
// least one bound is given, and a missing bound falls back to 0 or 1000.
func listRequest() (*rpc.ListTasksRequest, error) {
	req := &rpc.ListTasksRequest{
		Category: *listCategory,
		PostedBy: *listPostedBy,
		SortBy:   *listSort,
	}
	if *listMin == "" && *listMax == "" {
		return req, nil
	}
	r := &rpc.PriceRange{Min: decimal.Zero, Max: decimal.NewFromInt(1000)}
	if *listMin != "" {
		d, err := decimal.NewFromString(*listMin)
		if err != nil {
			return nil, fmt.Errorf("invalid --min: %w", err)
		}
		r.Min = d
	}
	if *listMax != "" {
		d, err := decimal.NewFromString(*listMax)
		if err != nil {
			return nil, fmt.Errorf("invalid --max: %w", err)
		}
		r.Max = d
	}
	req.PriceRange = r
	return req, nil
}

func createRequest() (*rpc.CreateTaskRequest, error) {
	payment, err := decimal.NewFromString(*createPayment)
	if err != nil {
		return nil, fmt.Errorf("invalid --payment: %w", err)
	}
	req := &rpc.CreateTaskRequest{
		Title:       *createTitle,
		Description: *createDescription,
		Category:    *createCategory,
		Payment:     payment,
		Location:    *createLocation,
		Tags:        *createTags,
	}
	if *createDue != "" {
		due, err := time.Parse(time.RFC3339, *createDue)
		if err != nil {
			return nil, fmt.Errorf("invalid --due: %w", err)
		}
		req.DueDate = &due
	}
	return req, nil
}
