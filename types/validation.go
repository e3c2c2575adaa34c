package types

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	msgMissing = "Missing data for required field."
	msgEmpty   = "Field may not be blank."
)

// FieldErrors maps a payload field to its validation messages.
type FieldErrors map[string][]string

// Add appends a message for field.
func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// payloadValidator reads the same binding tags gin checks on request bodies
// and reports fields by their JSON name.
var payloadValidator = newPayloadValidator()

func newPayloadValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// timestampLayouts are tried in order after a trailing "Z" has been rewritten
// to "+00:00". Layouts without an offset are read as UTC.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02T15:04-07:00",
	"2006-01-02T15:04-0700",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999-0700",
	"2006-01-02 15:04-07:00",
	"2006-01-02 15:04-0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// NormalizeTimestamp rewrites a trailing literal "Z" to an explicit UTC offset.
func NormalizeTimestamp(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasSuffix(s, "Z") || strings.HasSuffix(s, "z") {
		s = s[:len(s)-1] + "+00:00"
	}
	return s
}

// ParseTimestamp parses an ISO 8601 date-time as accepted on ingestion.
func ParseTimestamp(raw string) (time.Time, error) {
	s := NormalizeTimestamp(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ISO 8601 timestamp %q", raw)
}

// fieldMessage turns one failed binding rule into the client-facing message.
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgMissing
	case "oneof":
		return "Must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ") + "."
	case "min", "max":
		lo, hi := ruleBounds(fe.StructField())
		return fmt.Sprintf("Must be between %s and %s.", lo, hi)
	}
	return "Invalid value."
}

// ruleBounds reads the min and max params declared on a FeedbackCreate field.
func ruleBounds(structField string) (lo, hi string) {
	f, ok := reflect.TypeOf(FeedbackCreate{}).FieldByName(structField)
	if !ok {
		return "", ""
	}
	for _, rule := range strings.Split(f.Tag.Get("binding"), ",") {
		switch {
		case strings.HasPrefix(rule, "min="):
			lo = strings.TrimPrefix(rule, "min=")
		case strings.HasPrefix(rule, "max="):
			hi = strings.TrimPrefix(rule, "max=")
		}
	}
	return lo, hi
}

// Validate checks the payload and builds the Feedback to persist. It is pure:
// the returned FieldErrors is empty exactly when the Feedback is usable.
// Presence, sentiment and rating rules come from the binding tags; blank
// text, category items and timestamp syntax are checked here.
func (r *FeedbackCreate) Validate() (*Feedback, FieldErrors) {
	errs := FieldErrors{}

	if err := payloadValidator.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			errs.Add("_schema", err.Error())
			return nil, errs
		}
		for _, fe := range verrs {
			errs.Add(fe.Field(), fieldMessage(fe))
		}
	}

	for field, v := range map[string]*string{"user_query": r.UserQuery, "bot_response": r.BotResponse} {
		if v != nil && strings.TrimSpace(*v) == "" {
			errs.Add(field, msgEmpty)
		}
	}

	var ts time.Time
	if r.Timestamp != nil {
		parsed, err := ParseTimestamp(*r.Timestamp)
		if err != nil {
			errs.Add("timestamp", "Invalid timestamp format. Use ISO 8601 format.")
		}
		ts = parsed
	}

	categories := []string{}
	for i, c := range r.Categories {
		if strings.TrimSpace(c) == "" {
			errs.Add("categories", fmt.Sprintf("Item %d may not be blank.", i))
			continue
		}
		categories = append(categories, c)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	fb := &Feedback{
		UserQuery:    *r.UserQuery,
		BotResponse:  *r.BotResponse,
		FeedbackType: FeedbackType(*r.FeedbackType),
		RatingStars:  *r.RatingStars,
		Categories:   categories,
		Timestamp:    ts,
	}
	if r.UserComment != nil {
		fb.UserComment = *r.UserComment
	}
	if r.MessageID != nil {
		fb.MessageID = *r.MessageID
	}
	return fb, nil
}
