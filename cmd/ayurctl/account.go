package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bryanwahyu/ayurconnect/internal/client"
	"github.com/bryanwahyu/ayurconnect/internal/config"
	"github.com/bryanwahyu/ayurconnect/internal/domain/analysis"
)

func newOTPCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "otp",
		Short: "Log in with an email code",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "send EMAIL PHONE",
			Short: "Mail a login code",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := opts.client().SendOTP(cmd.Context(), args[0], args[1]); err != nil {
					return explain(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "OTP sent to", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "verify EMAIL CODE",
			Short: "Exchange a code for a session token",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := opts.client().VerifyOTP(cmd.Context(), args[0], args[1])
				if err != nil {
					return explain(err)
				}
				if opts.json {
					return printJSON(cmd.OutOrStdout(), s)
				}
				fmt.Fprintln(cmd.OutOrStdout(), s.Token)
				return nil
			},
		},
	)
	return cmd
}

func newContactCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "contact NAME EMAIL PHONE",
		Short: "Ask an Ayurvedic expert to get in touch",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := opts.client().Contact(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return explain(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

func newShareCmd(opts *rootOptions) *cobra.Command {
	var query, fileName, resultPath string
	cmd := &cobra.Command{
		Use:   "share medicine|lab|dosha --result FILE",
		Short: "Store a result summary and print a temporary link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(resultPath)
			if err != nil {
				return err
			}
			if !json.Valid(raw) {
				return fmt.Errorf("%s does not contain JSON", resultPath)
			}
			link, err := opts.client().Share(cmd.Context(), analysis.Kind(args[0]), query, fileName, json.RawMessage(raw))
			if err != nil {
				return explain(err)
			}
			if opts.json {
				return printJSON(cmd.OutOrStdout(), link)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n(expires %s)\n", link.URL, link.ExpiresAt.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}
	cmd.Flags().StringVar(&query, "query", "", "what was analyzed (medicine name or report text)")
	cmd.Flags().StringVar(&fileName, "file-name", "", "uploaded report name, for lab results")
	cmd.Flags().StringVar(&resultPath, "result", "", "file holding the result JSON (as printed with --json)")
	_ = cmd.MarkFlagRequired("result")
	return cmd
}

func newWhatsAppCmd() *cobra.Command {
	var number, configPath string
	cmd := &cobra.Command{
		Use:   "whatsapp HERB...",
		Short: "Print a WhatsApp order link for the given herbs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("number") {
				cfg, err := config.Read(configPath)
				if err != nil {
					return err
				}
				number = cfg.Contact.WhatsApp
			}

			var cart client.Cart
			for _, name := range args {
				cart.Add(analysis.HerbSuggestion{Name: name})
			}
			u, err := cart.WhatsAppURL(number)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), u)
			return nil
		},
	}
	cmd.Flags().StringVar(&number, "number", "", "shop WhatsApp number with country code (default contact.whatsapp from config)")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default $CONFIG_PATH or ./config.yaml)")
	return cmd
}
