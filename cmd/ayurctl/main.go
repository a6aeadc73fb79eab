// Command ayurctl talks to a running AyurConnect API and administers its
// lead log database.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bryanwahyu/ayurconnect/internal/client"
)

type rootOptions struct {
	server  string
	token   string
	timeout time.Duration
	json    bool
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		if errors.Is(err, client.ErrCancelled) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "ayurctl",
		Short:         "AyurConnect API client and admin tool",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetOut(out)

	server := os.Getenv("AYUR_SERVER")
	if server == "" {
		server = "http://localhost:10000"
	}
	root.PersistentFlags().StringVar(&opts.server, "server", server, "API base URL (env AYUR_SERVER)")
	root.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("AYUR_TOKEN"), "session token from 'otp verify' (env AYUR_TOKEN)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 2*time.Minute, "request timeout")
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "print raw JSON instead of text")

	root.AddCommand(
		newMedicineCmd(opts),
		newLabCmd(opts),
		newDoshaCmd(opts),
		newQuestionsCmd(opts),
		newOTPCmd(opts),
		newContactCmd(opts),
		newShareCmd(opts),
		newWhatsAppCmd(),
		newMigrateCmd(),
		newLeadsCmd(opts),
	)
	return root
}

func (o *rootOptions) client() *client.Client {
	c := client.New(o.server, client.WithHTTPClient(&http.Client{Timeout: o.timeout}))
	if o.token != "" {
		c.SetToken(o.token)
	}
	return c
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// explain turns client errors into what a user should read.
func explain(err error) error {
	var de *client.DomainError
	var rf *client.RequestFailedError
	switch {
	case errors.As(err, &de):
		return errors.New(de.Message)
	case errors.As(err, &rf):
		return fmt.Errorf("%s (%s)", rf.Error(), rf.Diagnostic())
	}
	return err
}
