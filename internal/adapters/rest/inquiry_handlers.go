package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"
	"mime"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const maxInquiryBodyBytes = 64 << 10

var inquiryValidate = newInquiryValidator()

// newInquiryValidator называет поля в ошибках по json-тегам, как в форме
func newInquiryValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type InquiryHandler struct {
	submitInquiryUC usecases_port.SubmitInquiryUseCase
}

func NewInquiryHandler(submitInquiryUC usecases_port.SubmitInquiryUseCase) *InquiryHandler {
	return &InquiryHandler{submitInquiryUC: submitInquiryUC}
}

// SubmitContact обрабатывает POST /api/v1/contact
func (h *InquiryHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SubmitContact"})

	var req ContactRequest
	isForm, err := decodeInquiry(w, r, &req)
	if err != nil {
		logger.Debug("Failed to decode contact form", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !checkInquiry(w, &req) {
		return
	}

	h.submit(w, r, logger, isForm, usecases_port.SubmitInquiryCommand{
		Kind:     domain.InquiryKindContact,
		Name:     req.Name,
		Email:    req.Email,
		Subject:  req.Subject,
		Message:  req.Message,
		Honeypot: req.Honey,
	})
}

// SubmitPropertyInquiry обрабатывает POST /api/v1/properties/{propertyID}/inquiries
func (h *InquiryHandler) SubmitPropertyInquiry(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "propertyID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler":     "SubmitPropertyInquiry",
		"property_id": idStr,
	})

	propertyID, err := strconv.Atoi(idStr)
	if err != nil {
		WriteJSONError(w, http.StatusNotFound, "Property not found")
		return
	}

	var req PropertyInquiryRequest
	isForm, err := decodeInquiry(w, r, &req)
	if err != nil {
		logger.Debug("Failed to decode inquiry form", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !checkInquiry(w, &req) {
		return
	}

	h.submit(w, r, logger, isForm, usecases_port.SubmitInquiryCommand{
		Kind:       domain.InquiryKindProperty,
		PropertyID: propertyID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Message:    req.Message,
		Honeypot:   req.Honey,
	})
}

func (h *InquiryHandler) submit(w http.ResponseWriter, r *http.Request, logger port.LoggerPort,
	isForm bool, cmd usecases_port.SubmitInquiryCommand) {
	result, err := h.submitInquiryUC.Execute(r.Context(), cmd)
	if err != nil {
		if errors.Is(err, domain.ErrPropertyNotFound) {
			WriteJSONError(w, http.StatusNotFound, "Property not found")
			return
		}
		logger.Error("Use case SubmitInquiry failed", err, nil)
		WriteJSONError(w, http.StatusBadGateway, "Failed to deliver inquiry")
		return
	}

	// обычная HTML-форма: как у formsubmit, сразу уводим на страницу благодарности
	if isForm && result.RedirectTo != "" {
		http.Redirect(w, r, result.RedirectTo, http.StatusSeeOther)
		return
	}

	resp := InquiryAcceptedResponse{
		Status:     "accepted",
		Queued:     result.Queued,
		RedirectTo: result.RedirectTo,
	}
	if !result.Dropped {
		id := result.InquiryID
		resp.InquiryID = &id
	}
	RespondWithJSON(w, http.StatusAccepted, resp)
}

// decodeInquiry понимает JSON и обычные формы. isForm == true, если пришла форма.
func decodeInquiry(w http.ResponseWriter, r *http.Request, dst interface{}) (isForm bool, err error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxInquiryBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		decoder := json.NewDecoder(r.Body)
		if err := decoder.Decode(dst); err != nil {
			return false, fmt.Errorf("invalid json: %w", err)
		}
		trimStringFields(dst)
		return false, nil
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxInquiryBodyBytes); err != nil {
			return true, fmt.Errorf("invalid multipart form: %w", err)
		}
	case "application/x-www-form-urlencoded", "":
		if err := r.ParseForm(); err != nil {
			return true, fmt.Errorf("invalid form: %w", err)
		}
	default:
		return false, fmt.Errorf("unsupported content type %q", mediaType)
	}

	fillFromForm(r.PostForm, dst)
	trimStringFields(dst)
	return true, nil
}

// fillFromForm раскладывает поля формы по строковым полям структуры по json-тегам
func fillFromForm(form url.Values, dst interface{}) {
	v := reflect.ValueOf(dst).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name := strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0]
		if name == "" || v.Field(i).Kind() != reflect.String {
			continue
		}
		v.Field(i).SetString(form.Get(name))
	}
}

// поля из одних пробелов не должны проходить required
func trimStringFields(dst interface{}) {
	v := reflect.ValueOf(dst).Elem()
	for i := 0; i < v.NumField(); i++ {
		if f := v.Field(i); f.Kind() == reflect.String {
			f.SetString(strings.TrimSpace(f.String()))
		}
	}
}

// checkInquiry валидирует запрос и сам пишет 400 с полями ошибок
func checkInquiry(w http.ResponseWriter, req interface{}) bool {
	err := inquiryValidate.Struct(req)
	if err == nil {
		return true
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request")
		return false
	}

	fields := make(map[string]string, len(validationErrs))
	for _, fe := range validationErrs {
		fields[fe.Field()] = fe.Tag()
	}
	RespondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Fields: fields})
	return false
}
