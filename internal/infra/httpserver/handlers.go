package httpserver

import (
	"errors"
	"net/http"
	"strings"

	appai "github.com/bryanwahyu/ayurconnect/internal/application/ai"
	appcontact "github.com/bryanwahyu/ayurconnect/internal/application/contact"
	appshare "github.com/bryanwahyu/ayurconnect/internal/application/share"
	"github.com/bryanwahyu/ayurconnect/internal/domain/analysis"
	"github.com/bryanwahyu/ayurconnect/internal/middleware"
)

// POST /api/gemini
// Body: {"type": "medicine"|"lab"|"dosha", ...}
// A result carrying its own "error" field is still a 200.
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body analysis.Request
	if err := decode(req, &body); err != nil {
		return err
	}

	counters := r.metrics.Analysis(body.Type)
	if counters != nil {
		counters.Total.Add(1)
	}

	res, err := r.gateway.Analyze(req.Context(), body)
	if counters != nil {
		switch {
		case err == nil:
			counters.Succeeded.Add(1)
		case errors.Is(err, analysis.ErrValidation):
			counters.Rejected.Add(1)
		case errors.Is(err, appai.ErrModelUnavailable), errors.Is(err, appai.ErrInvalidModelOutput):
			counters.Failed.Add(1)
		}
	}
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, res.Payload())
	return nil
}

// GET /api/questionnaire
func (r *Router) handleQuestionnaire(w http.ResponseWriter, _ *http.Request) error {
	writeJSON(w, http.StatusOK, r.gateway.Questionnaire())
	return nil
}

// POST /api/send-otp
// Body: {"email": "...", "phone": "..."}
func (r *Router) handleSendOTP(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if err := decode(req, &body); err != nil {
		return err
	}
	email := strings.TrimSpace(body.Email)
	phone := middleware.NormalizePhone(strings.TrimSpace(body.Phone))
	if err := middleware.ValidateEmail(email); err != nil {
		return invalid("email", err)
	}
	if err := middleware.ValidatePhone(phone); err != nil {
		return invalid("phone", err)
	}

	if err := r.auth.SendOTP(req.Context(), email, phone); err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "OTP sent to your email"})
	return nil
}

// POST /api/verify-otp
// Body: {"email": "...", "otp": "123456"}
func (r *Router) handleVerifyOTP(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := decode(req, &body); err != nil {
		return err
	}
	email := strings.TrimSpace(body.Email)
	code := strings.TrimSpace(body.OTP)
	if err := middleware.ValidateEmail(email); err != nil {
		return invalid("email", err)
	}
	if err := middleware.ValidateOTP(code); err != nil {
		return invalid("otp", err)
	}

	session, err := r.auth.VerifyOTP(req.Context(), email, code)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "OTP verified",
		"token":     session.Token,
		"expiresAt": session.ExpiresAt,
	})
	return nil
}

// POST /api/contact
// Body: {"name": "...", "email": "...", "phone": "..."}
func (r *Router) handleContact(w http.ResponseWriter, req *http.Request) error {
	var body appcontact.Request
	if err := decode(req, &body); err != nil {
		return err
	}
	body.Name = middleware.SanitizeString(body.Name)
	body.Email = strings.TrimSpace(body.Email)
	body.Phone = middleware.NormalizePhone(strings.TrimSpace(body.Phone))

	if err := middleware.ValidateName(body.Name); err != nil {
		return invalid("name", err)
	}
	if err := middleware.ValidateEmail(body.Email); err != nil {
		return invalid("email", err)
	}
	if err := middleware.ValidatePhone(body.Phone); err != nil {
		return invalid("phone", err)
	}

	r.contact.Submit(req.Context(), body)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Thank you! An expert will contact you shortly."})
	return nil
}

// POST /api/share
// Body: {"type": "...", "query": "...", "fileName"?: "...", "result": {...}}
func (r *Router) handleShare(w http.ResponseWriter, req *http.Request) error {
	var body appshare.Request
	if err := decode(req, &body); err != nil {
		return err
	}
	body.Query = strings.TrimSpace(body.Query)

	link, err := r.share.Create(req.Context(), body)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, link)
	return nil
}
