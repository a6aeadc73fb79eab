package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bryanwahyu/ayurconnect/internal/domain/analysis"
)

// File is a lab report picked by the user.
type File struct {
	Name     string
	MIMEType string
	Data     []byte
}

// LabSubmission is the raw lab form: free text, a file, or both.
type LabSubmission struct {
	Text string
	File *File
}

func (c *Client) AnalyzeMedicine(ctx context.Context, name string, p *analysis.Personalization) (*analysis.MedicineResult, error) {
	req := analysis.NewMedicineRequest(name, p)
	res, err := c.analyze(ctx, req)
	if err != nil {
		return nil, err
	}
	return res.Medicine, nil
}

func (c *Client) AnalyzeLab(ctx context.Context, sub LabSubmission, p *analysis.Personalization) (*analysis.LabResult, error) {
	in, err := sub.input()
	if err != nil {
		return nil, err
	}
	res, err := c.analyze(ctx, analysis.NewLabRequest(in, p))
	if err != nil {
		return nil, err
	}
	return res.Lab, nil
}

func (c *Client) AnalyzeDosha(ctx context.Context, answers map[string]string, p *analysis.Personalization) (*analysis.DoshaResult, error) {
	res, err := c.analyze(ctx, analysis.NewDoshaRequest(answers, p))
	if err != nil {
		return nil, err
	}
	return res.Dosha, nil
}

func (s LabSubmission) input() (analysis.LabInput, error) {
	in := analysis.LabInput{Text: strings.TrimSpace(s.Text)}
	if s.File == nil {
		if in.Text == "" {
			return in, analysis.NewValidationError("input", "enter report text or choose a file")
		}
		return in, nil
	}

	if !analysis.IsAcceptedMIMEType(s.File.MIMEType) {
		return in, analysis.NewValidationError("file", fmt.Sprintf("type %q is not supported, use PNG, JPEG or PDF", s.File.MIMEType))
	}
	if len(s.File.Data) == 0 {
		return in, analysis.NewValidationError("file", "is empty")
	}
	if len(s.File.Data) > analysis.MaxFileSize {
		return in, analysis.NewValidationError("file", "is larger than 30 MB")
	}
	in.Image = &analysis.InlineImage{
		MimeType: s.File.MIMEType,
		Data:     base64.StdEncoding.EncodeToString(s.File.Data),
	}
	return in, nil
}

// analyze validates req locally, then runs it in its kind's slot.
func (c *Client) analyze(ctx context.Context, req analysis.Request) (analysis.Result, error) {
	if err := req.Validate(c.Questionnaire()); err != nil {
		return analysis.Result{}, err
	}

	ctx, gen, done := c.begin(ctx, req.Type)
	defer done()

	var raw json.RawMessage
	err := c.call(ctx, "POST", "/api/gemini", req, &raw)

	// a newer request or Cancel owns the slot now; drop whatever came back
	if !c.current(req.Type, gen) || errors.Is(err, context.Canceled) {
		return analysis.Result{}, ErrCancelled
	}
	if err != nil {
		var rf *RequestFailedError
		if errors.As(err, &rf) {
			c.logger.WarnContext(ctx, "analysis request failed",
				slog.String("kind", string(req.Type)),
				slog.String("detail", rf.Diagnostic()),
			)
		}
		return analysis.Result{}, err
	}

	res, err := decodeResult(req.Type, raw)
	if err != nil {
		return analysis.Result{}, err
	}
	if msg := res.DomainError(); msg != "" {
		return analysis.Result{}, &DomainError{Kind: req.Type, Message: msg}
	}
	return res, nil
}

// decodeResult checks the reply has the shape the kind promises.
func decodeResult(kind analysis.Kind, raw json.RawMessage) (analysis.Result, error) {
	res := analysis.Result{Kind: kind}
	var err error
	switch kind {
	case analysis.KindMedicine:
		res.Medicine = &analysis.MedicineResult{}
		if err = json.Unmarshal(raw, res.Medicine); err == nil {
			err = res.Medicine.Normalize()
		}
	case analysis.KindLab:
		res.Lab = &analysis.LabResult{}
		if err = json.Unmarshal(raw, res.Lab); err == nil {
			err = res.Lab.Normalize()
		}
	case analysis.KindDosha:
		res.Dosha = &analysis.DoshaResult{}
		if err = json.Unmarshal(raw, res.Dosha); err == nil {
			err = res.Dosha.Normalize()
		}
	}
	if err != nil {
		return analysis.Result{}, &RequestFailedError{Status: 200, Err: fmt.Errorf("unexpected %s result: %w", kind, err)}
	}
	return res, nil
}
