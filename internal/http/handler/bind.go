package handler

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
)

var validate = validator.New()

var errMalformedBody = errors.New("request body must be valid JSON")

// bindJSON parses the request body into dst and validates its struct tags.
func bindJSON(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return errMalformedBody
	}
	return validate.Struct(dst)
}

// writeBindError renders an error returned by bindJSON.
func writeBindError(c *fiber.Ctx, err error) error {
	if errors.Is(err, errMalformedBody) {
		return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", err.Error())
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		e := verrs[0]
		return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT",
			fmt.Sprintf("%s: validation failed on '%s'", e.Field(), e.Tag()))
	}
	return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "invalid request")
}

// pathUUID reads a path parameter and reports whether it is a well-formed UUID.
// The returned string is a copy and stays valid after the handler returns.
func pathUUID(c *fiber.Ctx, name string) (string, bool) {
	id := utils.CopyString(c.Params(name))
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func invalidID(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
}

// emptyToNil treats an empty optional id as absent.
func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// queryParam returns a copy of a query value safe to keep past the request.
func queryParam(c *fiber.Ctx, key string) string {
	return utils.CopyString(c.Query(key))
}
