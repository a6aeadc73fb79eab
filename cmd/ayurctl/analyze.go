package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bryanwahyu/ayurconnect/internal/client"
	"github.com/bryanwahyu/ayurconnect/internal/domain/analysis"
)

type personalFlags struct {
	age, gender, context string
}

func (p *personalFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.age, "age", "", "age to tailor suggestions")
	cmd.Flags().StringVar(&p.gender, "gender", "", "gender to tailor suggestions")
	cmd.Flags().StringVar(&p.context, "context", "", "allergies, symptoms or other context")
}

func (p *personalFlags) value() *analysis.Personalization {
	v := &analysis.Personalization{Age: p.age, Gender: p.gender, Context: p.context}
	if v.IsZero() {
		return nil
	}
	return v
}

func newMedicineCmd(opts *rootOptions) *cobra.Command {
	var pf personalFlags
	cmd := &cobra.Command{
		Use:   "medicine NAME",
		Short: "Suggest complementary herbs and lifestyle changes for a medicine",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			res, err := opts.client().AnalyzeMedicine(cmd.Context(), name, pf.value())
			if err != nil {
				return explain(err)
			}
			if opts.json {
				return printJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintln(cmd.OutOrStdout(), analysis.FormatMedicine(name, res))
			return nil
		},
	}
	pf.bind(cmd)
	return cmd
}

func newLabCmd(opts *rootOptions) *cobra.Command {
	var (
		pf   personalFlags
		text string
		path string
	)
	cmd := &cobra.Command{
		Use:   "lab",
		Short: "Analyze lab report text and/or a PNG, JPEG or PDF file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sub := client.LabSubmission{Text: text}
			if path != "" {
				f, err := readReport(path)
				if err != nil {
					return err
				}
				sub.File = f
			}
			res, err := opts.client().AnalyzeLab(cmd.Context(), sub, pf.value())
			if err != nil {
				return explain(err)
			}
			if opts.json {
				return printJSON(cmd.OutOrStdout(), res)
			}
			q := analysis.LabQuery{Text: text}
			if sub.File != nil {
				q.FileName = sub.File.Name
			}
			fmt.Fprintln(cmd.OutOrStdout(), analysis.FormatLab(q, res))
			return nil
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "report text")
	cmd.Flags().StringVar(&path, "file", "", "report file")
	pf.bind(cmd)
	return cmd
}

// readReport loads a report file and sniffs its type.
func readReport(path string) (*client.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	mime := http.DetectContentType(data)
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return &client.File{Name: filepath.Base(path), MIMEType: mime, Data: data}, nil
}

func newDoshaCmd(opts *rootOptions) *cobra.Command {
	var (
		pf      personalFlags
		answers map[string]string
	)
	cmd := &cobra.Command{
		Use:   "dosha --answer key=value ...",
		Short: "Identify the dominant dosha from questionnaire answers",
		Long:  "Identify the dominant dosha. Every question listed by 'ayurctl questions' needs an answer.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := opts.client().AnalyzeDosha(cmd.Context(), answers, pf.value())
			if err != nil {
				return explain(err)
			}
			if opts.json {
				return printJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintln(cmd.OutOrStdout(), analysis.FormatDosha(res))
			return nil
		},
	}
	cmd.Flags().StringToStringVarP(&answers, "answer", "a", nil, "answer as key=value, repeatable")
	pf.bind(cmd)
	return cmd
}

func newQuestionsCmd(opts *rootOptions) *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "List the dosha questionnaire",
		RunE: func(cmd *cobra.Command, _ []string) error {
			q := analysis.DefaultQuestionnaire()
			if remote {
				var err error
				if q, err = opts.client().LoadQuestionnaire(cmd.Context()); err != nil {
					return explain(err)
				}
			}
			if opts.json {
				return printJSON(cmd.OutOrStdout(), q)
			}
			w := cmd.OutOrStdout()
			for _, item := range q.Questions {
				fmt.Fprintf(w, "%s: %s\n", item.Key, item.Text)
				for _, o := range item.Options {
					fmt.Fprintf(w, "  - %s\n", o)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "fetch the questions from the server")
	return cmd
}
