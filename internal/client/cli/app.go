// Package cli is the command-line front end over the client session, feed and
// profile views.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/baharkarakas/mini-linkedin/internal/client"
	"github.com/baharkarakas/mini-linkedin/internal/models"
)

var ErrUnknownCommand = errors.New("unknown command")

const usage = `usage: mini-linkedin <command> [args]

commands:
  register          create an account and sign in
  login             sign in
  logout            forget the stored token
  whoami            show the signed-in user
  feed              list recent posts
  post <text>       publish a post
  profile [userId]  show a profile (defaults to yours)
  bio <text>        replace your bio
`

type App struct {
	c       *client.Client
	session *client.Session
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(c *client.Client, store client.TokenStore, in io.Reader, out io.Writer) *App {
	return &App{
		c:       c,
		session: client.NewSession(c, store),
		reader:  bufio.NewReader(in),
		out:     out,
	}
}

// Run resolves the stored session and executes one command.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return nil
	}
	cmd, rest := args[0], args[1:]

	// these never need the server
	switch cmd {
	case "logout":
		return a.Logout()
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	}

	if err := a.session.Init(ctx); err != nil {
		return fmt.Errorf("restoring session: %w", err)
	}

	switch cmd {
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "whoami":
		return a.WhoAmI()
	case "feed":
		return a.Feed(ctx)
	case "post":
		return a.Post(ctx, strings.Join(rest, " "))
	case "profile":
		id := ""
		if len(rest) > 0 {
			id = rest[0]
		}
		return a.Profile(ctx, id)
	case "bio":
		return a.Bio(ctx, strings.Join(rest, " "))
	}
	fmt.Fprint(a.out, usage)
	return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
}

func (a *App) Register(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Name", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	u, err := a.session.Register(ctx, name, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Welcome, %s!\n", u.Name)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	u, err := a.session.Login(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Signed in as %s <%s>\n", u.Name, u.Email)
	return nil
}

func (a *App) Logout() error {
	if err := a.session.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

func (a *App) WhoAmI() error {
	u, ok := a.session.User()
	if !ok {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s>\nid: %s\n", u.Name, u.Email, u.ID)
	return nil
}

func (a *App) Feed(ctx context.Context) error {
	f := client.NewFeed(a.c, a.session)
	if err := f.Load(ctx); err != nil {
		fmt.Fprintln(a.out, f.Err())
		return err
	}
	posts := f.Posts()
	if len(posts) == 0 {
		fmt.Fprintln(a.out, "No posts yet.")
		return nil
	}
	a.printPosts(posts)
	return nil
}

func (a *App) Post(ctx context.Context, content string) error {
	if _, ok := a.session.User(); !ok {
		return client.ErrNotSignedIn
	}
	if strings.TrimSpace(content) == "" {
		var err error
		if content, err = GetSimpleText(a.reader, "What's on your mind?", a.out); err != nil {
			return err
		}
	}
	p, err := client.NewFeed(a.c, a.session).Submit(ctx, content)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Posted (%s)\n", p.ID)
	return nil
}

func (a *App) Profile(ctx context.Context, userID string) error {
	if userID == "" {
		u, ok := a.session.User()
		if !ok {
			return client.ErrNotSignedIn
		}
		userID = u.ID
	}
	v := client.NewProfileView(a.c, a.session, userID)
	if err := v.Load(ctx); err != nil {
		fmt.Fprintln(a.out, v.Err())
		return err
	}
	prof, _ := v.Profile()
	fmt.Fprintf(a.out, "%s <%s>\n", prof.User.Name, prof.User.Email)
	fmt.Fprintf(a.out, "Joined %s\n", prof.User.CreatedAt.Format("January 2, 2006"))
	if prof.User.Bio != "" {
		fmt.Fprintf(a.out, "\n%s\n", prof.User.Bio)
	}
	fmt.Fprintf(a.out, "\nPosts (%d)\n", len(prof.Posts))
	a.printPosts(prof.Posts)
	return nil
}

func (a *App) Bio(ctx context.Context, bio string) error {
	u, ok := a.session.User()
	if !ok {
		return client.ErrNotSignedIn
	}
	v := client.NewProfileView(a.c, a.session, u.ID)
	if err := v.BeginEdit(); err != nil {
		return err
	}
	v.SetDraft(bio)
	if err := v.Save(ctx); err != nil {
		fmt.Fprintln(a.out, v.SaveErr())
		return err
	}
	fmt.Fprintln(a.out, "Bio updated")
	return nil
}

func (a *App) printPosts(posts []models.Post) {
	for _, p := range posts {
		if !p.HasAuthor() {
			continue
		}
		fmt.Fprintf(a.out, "\n%s <%s>, %s\n%s\n", p.Author.Name, p.Author.Email, p.CreatedAt.Local().Format(time.RFC822), p.Content)
	}
}
