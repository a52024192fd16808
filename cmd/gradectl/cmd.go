package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/gradewise-dev/gradewise/internal/client"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	api *client.Client
	out io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  register -name NAME -email EMAIL          - create an account (password prompted)")
	fmt.Fprintln(cli.out, "  login -email EMAIL                        - sign in (password prompted)")
	fmt.Fprintln(cli.out, "  logout                                    - forget the stored session")
	fmt.Fprintln(cli.out, "  subjects [add NAME | rm ID]               - list, add or remove subjects")
	fmt.Fprintln(cli.out, "  scores [add -subject ID -name NAME -value N [-date YYYY-MM-DD] | rm ID]")
	fmt.Fprintln(cli.out, "  goals [add -desc TEXT -target N -deadline YYYY-MM-DD | rm ID]")
	fmt.Fprintln(cli.out, "  dashboard                                 - averages, recent scores and goals")
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "register":
		return cli.register(ctx, args[2:])
	case "login":
		return cli.login(ctx, args[2:])
	case "logout":
		if err := cli.api.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "Logged out.")
		return nil
	case "subjects":
		return cli.subjects(ctx, args[2:])
	case "scores":
		return cli.scores(ctx, args[2:])
	case "goals":
		return cli.goals(ctx, args[2:])
	case "dashboard":
		return cli.dashboard(ctx)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) promptPassword() (string, error) {
	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

func (cli *commandLine) register(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("register", flag.ContinueOnError)
	cmd.SetOutput(cli.out)
	name := cmd.String("name", "", "Your display name.")
	email := cmd.String("email", "", "Your email address.")

	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *name == "" || *email == "" {
		cmd.Usage()
		return errHelp
	}

	pwd, err := cli.promptPassword()
	if err != nil {
		return err
	}
	if pwd == "" {
		cmd.Usage()
		return errHelp
	}

	res, err := cli.api.Register(ctx, *name, *email, pwd)
	if err != nil {
		return err
	}

	fmt.Fprintf(cli.out, "Welcome, %s! You are signed in.\n", res.User.Name)
	return nil
}

func (cli *commandLine) login(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("login", flag.ContinueOnError)
	cmd.SetOutput(cli.out)
	email := cmd.String("email", "", "Your email address.")

	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		cmd.Usage()
		return errHelp
	}

	pwd, err := cli.promptPassword()
	if err != nil {
		return err
	}

	res, err := cli.api.Login(ctx, *email, pwd)
	if err != nil {
		return err
	}

	fmt.Fprintf(cli.out, "Signed in as %s.\n", res.User.Name)
	return nil
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}

func (cli *commandLine) subjects(ctx context.Context, args []string) error {
	if len(args) == 0 {
		subjects, err := cli.api.Subjects(ctx)
		if err != nil {
			return err
		}
		return renderSubjects(cli.out, subjects)
	}

	switch args[0] {
	case "add":
		name := strings.TrimSpace(strings.Join(args[1:], " "))
		if name == "" {
			return fmt.Errorf("usage: subjects add NAME")
		}
		subject, err := cli.api.CreateSubject(ctx, name)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Added subject %d: %s\n", subject.ID, subject.Name)
		return nil
	case "rm":
		if len(args) != 2 {
			return fmt.Errorf("usage: subjects rm ID")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		if err := cli.api.DeleteSubject(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Removed subject %d and its scores.\n", id)
		return nil
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) scores(ctx context.Context, args []string) error {
	if len(args) == 0 {
		scores, err := cli.api.Scores(ctx)
		if err != nil {
			return err
		}
		return renderScores(cli.out, scores)
	}

	switch args[0] {
	case "add":
		cmd := flag.NewFlagSet("scores add", flag.ContinueOnError)
		cmd.SetOutput(cli.out)
		subjectID := cmd.Uint("subject", 0, "Subject id.")
		name := cmd.String("name", "", "Assignment name.")
		value := cmd.Float64("value", -1, "Score between 0 and 100.")
		date := cmd.String("date", time.Now().Format("2006-01-02"), "Date of the assignment.")

		if err := cmd.Parse(args[1:]); err != nil {
			return err
		}
		if *subjectID == 0 || *name == "" || *value < 0 {
			cmd.Usage()
			return errHelp
		}

		score, err := cli.api.CreateScore(ctx, client.NewScore{
			Value:          *value,
			AssignmentName: *name,
			Date:           *date,
			SubjectID:      *subjectID,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Added %s: %.1f in %s\n", score.AssignmentName, score.Value, score.Subject.Name)
		return nil
	case "rm":
		if len(args) != 2 {
			return fmt.Errorf("usage: scores rm ID")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		if err := cli.api.DeleteScore(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Removed score %d.\n", id)
		return nil
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) goals(ctx context.Context, args []string) error {
	if len(args) == 0 {
		goals, err := cli.api.Goals(ctx)
		if err != nil {
			return err
		}
		return renderGoals(cli.out, goals)
	}

	switch args[0] {
	case "add":
		cmd := flag.NewFlagSet("goals add", flag.ContinueOnError)
		cmd.SetOutput(cli.out)
		desc := cmd.String("desc", "", "What you want to achieve.")
		target := cmd.Float64("target", -1, "Target average between 0 and 100.")
		deadline := cmd.String("deadline", "", "Deadline (YYYY-MM-DD).")

		if err := cmd.Parse(args[1:]); err != nil {
			return err
		}
		if *desc == "" || *target < 0 || *deadline == "" {
			cmd.Usage()
			return errHelp
		}

		goal, err := cli.api.CreateGoal(ctx, client.NewGoal{
			Description: *desc,
			TargetScore: *target,
			Deadline:    *deadline,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Added goal %d: %s\n", goal.ID, goal.Description)
		return nil
	case "rm":
		if len(args) != 2 {
			return fmt.Errorf("usage: goals rm ID")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		if err := cli.api.DeleteGoal(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Removed goal %d.\n", id)
		return nil
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) dashboard(ctx context.Context) error {
	dash, err := cli.api.LoadDashboard(ctx)
	if err != nil {
		return err
	}
	return renderDashboard(cli.out, dash)
}

// stdinPassword reads one line when stdin is not a terminal, e.g. a password piped in.
func stdinPassword(int) ([]byte, error) {
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}
