package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"connectrpc.com/connect"
	"github.com/fatih/color"

	"github.com/kazz187/taskmarket/internal/rpc"
	usercolor "github.com/kazz187/taskmarket/pkg/color"
)

var (
	bold  = color.New(color.Bold)
	faint = color.New(color.Faint)
	red   = color.New(color.FgRed)
)

var statusColors = map[string]*color.Color{
	"open":        color.New(color.FgGreen),
	"assigned":    color.New(color.FgBlue),
	"in_progress": color.New(color.FgYellow),
	"completed":   color.New(color.FgHiBlack),
	"cancelled":   color.New(color.FgRed),
}

func setupColor(disabled bool) {
	if disabled {
		color.NoColor = true
	}
}

func status(s string) string {
	c, ok := statusColors[s]
	if !ok {
		return s
	}
	return c.Sprint(strings.ReplaceAll(s, "_", " "))
}

func printSignedIn(u *rpc.User, token string) {
	fmt.Printf("Signed in as %s <%s>\n", bold.Sprint(u.Name), u.Email)
	fmt.Printf("export TASKMARKET_TOKEN=%s\n", token)
}

func printUser(u *rpc.User) {
	fmt.Printf("%s %s\n", usercolor.Name(u.ID, u.Name), faint.Sprintf("(%s)", u.ID))
	fmt.Printf("  Email:     %s\n", u.Email)
	if u.Location != "" {
		fmt.Printf("  Location:  %s\n", u.Location)
	}
	fmt.Printf("  Rating:    %.1f (%d reviews)\n", u.Rating, u.ReviewCount)
	fmt.Printf("  Joined:    %s\n", u.JoinedDate.Format("2006-01-02"))
	fmt.Printf("  Posted:    %d\n", u.TasksPosted)
	fmt.Printf("  Completed: %d\n", u.TasksCompleted)
	if u.Bio != "" {
		fmt.Printf("\n  %s\n", u.Bio)
	}
}

func printTaskList(tasks []*rpc.Task) {
	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tCATEGORY\tPAYMENT\tLOCATION\tTITLE")
	for _, t := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s\t$%s\t%s\t%s\n",
			t.ID, status(t.Status), t.Category, t.Payment.StringFixed(2), t.Location, t.Title)
	}
	w.Flush()
}

func printTask(t *rpc.Task) {
	fmt.Printf("%s %s\n", bold.Sprint(t.Title), faint.Sprintf("(%s)", t.ID))
	fmt.Printf("  Status:    %s\n", status(t.Status))
	fmt.Printf("  Category:  %s\n", t.Category)
	fmt.Printf("  Payment:   $%s\n", t.Payment.StringFixed(2))
	if t.Location != "" {
		fmt.Printf("  Location:  %s\n", t.Location)
	}
	fmt.Printf("  Posted:    %s by %s\n", t.CreatedAt.Format("2006-01-02 15:04"), usercolor.Name(t.PostedBy.ID, t.PostedBy.Name))
	if t.DueDate != nil {
		fmt.Printf("  Due:       %s\n", t.DueDate.Format("2006-01-02 15:04"))
	}
	if t.AssignedTo != nil {
		fmt.Printf("  Assigned:  %s (%s)\n", usercolor.Name(t.AssignedTo.ID, t.AssignedTo.Name), t.AssignedTo.ID)
	}
	if len(t.Tags) > 0 {
		fmt.Printf("  Tags:      %s\n", strings.Join(t.Tags, ", "))
	}
	if t.Description != "" {
		fmt.Printf("\n  %s\n", t.Description)
	}
}

func printError(err error) {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		fmt.Fprintf(os.Stderr, "%s %s\n", red.Sprintf("[%s]", connectErr.Code()), connectErr.Message())
		return
	}
	fmt.Fprintf(os.Stderr, "%s %v\n", red.Sprint("error:"), err)
}
