package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"bank-admin-go/internal/auth"
	"bank-admin-go/internal/model"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	errNotSignedIn = errors.New("not signed in")
	errNotFound    = errors.New("not found")
)

// app is what every command shares once flags are parsed.
type app struct {
	cfg     *Config
	in      *bufio.Reader
	out     io.Writer
	client  *http.Client
	session *auth.Session
}

func newRootCommand(cfg *Config, in io.Reader, out io.Writer) *cobra.Command {
	a := &app{cfg: cfg, in: bufio.NewReader(in), out: out}

	root := &cobra.Command{
		Use:          "bank-admin",
		Short:        "Manage bank accounts and credit cards",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.setup()
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(out)

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.APIURL, "api-url", cfg.APIURL, "base URL of the bank admin API")
	flags.StringVar(&cfg.Token, "token", cfg.Token, "bearer token, overrides the saved one")
	flags.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "where login saves the token")
	flags.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "timeout of every API request")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")

	root.AddCommand(
		newLoginCommand(a),
		newLogoutCommand(a),
		newEntityCommand(a, model.BankAccounts),
		newEntityCommand(a, model.CreditCards),
	)

	return root
}

func (a *app) setup() error {
	level, err := log.ParseLevel(a.cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}
	log.SetLevel(level)

	token, err := a.cfg.loadToken()
	if err != nil {
		return err
	}

	a.client = &http.Client{Timeout: a.cfg.Timeout}
	a.session = auth.NewSession(token)
	return nil
}

func (a *app) readLine(prompt string) (string, error) {
	fmt.Fprint(a.out, prompt)
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func newLoginCommand(a *app) *cobra.Command {
	var req auth.LoginRequest

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and save the token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if req.Password == "" {
				password, err := a.readLine("Password: ")
				if err != nil {
					return err
				}
				req.Password = password
			}

			url := strings.TrimRight(a.cfg.APIURL, "/") + "/api/authenticate"
			if err := a.session.Login(cmd.Context(), a.client, url, req); err != nil {
				return err
			}
			if err := a.cfg.saveToken(a.session.Token()); err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Signed in as %s\n", req.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&req.Username, "username", "u", "admin", "login")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "password, asked for when empty")
	cmd.Flags().BoolVar(&req.RememberMe, "remember-me", false, "ask for a long lived token")

	return cmd
}

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved token",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			a.session.Logout()
			if err := os.Remove(a.cfg.TokenFile); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("removing token file: %w", err)
			}
			fmt.Fprintln(a.out, "Signed out")
			return nil
		},
	}
}
