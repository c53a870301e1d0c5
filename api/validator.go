package api

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

const validatedBodyKey = "validatedBody"

// parseEvaluateRequest binds the request from the body, or from the query
// string when the body is empty, and validates it. The result is stored in
// the request locals for the handler.
func parseEvaluateRequest(c *fiber.Ctx) error {
	req := &EvaluateRequest{}

	var err error
	if len(c.Body()) > 0 {
		err = c.BodyParser(req)
	} else {
		err = c.QueryParser(req)
	}
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid request body",
			Code:    ErrInvalidRequest,
			Details: err.Error(),
		})
	}

	if errs := validate.Struct(req); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation failed",
			Code:    ErrInvalidRequest,
			Details: describeValidation(errs),
		})
	}

	c.Locals(validatedBodyKey, req)
	return c.Next()
}

func describeValidation(errs error) string {
	verrs, ok := errs.(validator.ValidationErrors)
	if !ok {
		return errs.Error()
	}
	var details strings.Builder
	for _, err := range verrs {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		switch err.Tag() {
		case "required":
			details.WriteString(fmt.Sprintf("%s is required", err.Field()))
		case "min":
			if err.Type().Kind() == reflect.String {
				details.WriteString(fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param()))
			} else {
				details.WriteString(fmt.Sprintf("%s must be at least %s", err.Field(), err.Param()))
			}
		case "max":
			if err.Type().Kind() == reflect.String {
				details.WriteString(fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param()))
			} else {
				details.WriteString(fmt.Sprintf("%s must be at most %s", err.Field(), err.Param()))
			}
		default:
			details.WriteString(fmt.Sprintf("%s failed %s validation", err.Field(), err.Tag()))
		}
	}
	return details.String()
}

// contentTypeValidator accepts JSON and form bodies on POST.
func contentTypeValidator(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost || len(c.Body()) == 0 {
		return c.Next()
	}
	ct := strings.ToLower(c.Get(fiber.HeaderContentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	switch ct {
	case fiber.MIMEApplicationJSON, fiber.MIMEApplicationForm:
		return c.Next()
	}
	return c.Status(fiber.StatusUnsupportedMediaType).JSON(ErrorResponse{
		Error:   "unsupported media type",
		Code:    ErrInvalidContent,
		Details: "Content-Type must be application/json or application/x-www-form-urlencoded",
	})
}
