package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/chaimtop/studygo/core"
	"github.com/chaimtop/studygo/core/calendar"
	"github.com/chaimtop/studygo/core/session"
	"github.com/chaimtop/studygo/core/student"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	conf    *core.Config
	session *session.Store
	svc     *student.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  student login -code CODE                 - exchange a login code for a session")
	fmt.Println("  student bindphone -openid ID -phone N    - bind a phone number (dev mode)")
	fmt.Println("  student me                               - show the current profile")
	fmt.Println("  student schedule [-date YYYY-MM-DD] [-week] - show the day or week schedule")
	fmt.Println("  student checkin                          - check in for today")
	fmt.Println("  student calendar [-year Y -month M]      - show the check-in calendar")
	fmt.Println("  student homework [-id ID] [-done ID]     - list homework / show / complete one")
	fmt.Println("  student messages [-all]                  - list supervision messages")
	fmt.Println("  student recordings [-subject ID] [-all]  - list recorded lessons")
	fmt.Println("  student chat -message TEXT               - ask the tutoring assistant")
	fmt.Println("  student logout                           - clear the local session")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	ctx, cancel := context.WithTimeout(context.Background(), cli.conf.API.Timeout+5*time.Second)
	defer cancel()

	switch args[1] {
	case "login":
		cmd := flag.NewFlagSet("login", flag.ExitOnError)
		code := cmd.String("code", "", "The platform login code.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.login(ctx, *code)
	case "bindphone":
		cmd := flag.NewFlagSet("bindphone", flag.ExitOnError)
		openID := cmd.String("openid", "", "The openid returned by a NeedBind login.")
		sessionKey := cmd.String("sessionkey", "", "The session key returned by a NeedBind login.")
		phone := cmd.String("phone", "", "The 11-digit phone number.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.bindPhone(ctx, *openID, *sessionKey, *phone)
	case "me":
		return cli.me(ctx)
	case "schedule":
		cmd := flag.NewFlagSet("schedule", flag.ExitOnError)
		date := cmd.String("date", calendar.Today(), "The date to show.")
		week := cmd.Bool("week", false, "Show the whole week.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.schedule(ctx, *date, *week)
	case "checkin":
		return cli.checkin(ctx)
	case "calendar":
		now := time.Now()
		cmd := flag.NewFlagSet("calendar", flag.ExitOnError)
		year := cmd.Int("year", now.Year(), "The year to show.")
		month := cmd.Int("month", int(now.Month()), "The month to show.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.calendar(ctx, *year, *month)
	case "homework":
		cmd := flag.NewFlagSet("homework", flag.ExitOnError)
		id := cmd.Int("id", 0, "Show the detail of one homework.")
		done := cmd.Int("done", 0, "Mark one homework as completed.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.homework(ctx, *id, *done)
	case "messages":
		cmd := flag.NewFlagSet("messages", flag.ExitOnError)
		all := cmd.Bool("all", false, "Keep loading until exhausted.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.messages(ctx, *all)
	case "recordings":
		cmd := flag.NewFlagSet("recordings", flag.ExitOnError)
		subject := cmd.Int("subject", 0, "Filter by subject id (0 = all).")
		all := cmd.Bool("all", false, "Keep loading until exhausted.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.recordings(ctx, *subject, *all)
	case "chat":
		cmd := flag.NewFlagSet("chat", flag.ExitOnError)
		message := cmd.String("message", "", "The message to send.")
		conv := cmd.String("conversation", "", "Continue an existing conversation.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.chat(ctx, *message, *conv)
	case "logout":
		cli.svc.Logout()
		fmt.Println("logged out")
		return nil
	default:
		cli.printUsage()
		return errHelp
	}
}

// requireAuth guards personalized commands so they fail fast without a token.
func (cli *commandLine) requireAuth() error {
	if !cli.session.Authenticated() {
		return student.ErrNotLoggedIn
	}
	return nil
}
