package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lojaweb/catalog/internal/validation"
)

// BindJSON decodes the body only; the payload types carry no binding rules.
// Field rules run later in the validation stage so that missing fields
// answer 422 rather than 400. An empty body decodes as the zero payload.
func BindJSON(ctx *gin.Context, out interface{}) bool {
	err := ctx.ShouldBindJSON(out)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		RespondError(ctx, http.StatusRequestEntityTooLarge, "payload_too_large", "Request body too large", nil)
		return false
	}

	RespondBadRequest(ctx, "Invalid request body", parseBindError(err, out))
	return false
}

func parseBindError(err error, out interface{}) interface{} {
	var syntaxError *json.SyntaxError

	if errors.As(err, &syntaxError) {
		return gin.H{"json": "invalid_json_syntax"}
	}

	var unmatchedTypeError *json.UnmarshalTypeError

	if errors.As(err, &unmatchedTypeError) {
		field := jsonName(baseStructType(out), unmatchedTypeError.Field)

		return gin.H{
			"json":  "invalid_json_type",
			"field": field,
			"fields": []validation.FieldError{
				{
					Field:   field,
					Rule:    "type",
					Message: fmt.Sprintf("must be of type %s", unmatchedTypeError.Type.String()),
				},
			},
		}
	}

	return gin.H{"reason": err.Error()}
}

func baseStructType(v interface{}) reflect.Type {
	t := reflect.TypeOf(v)

	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t != nil && t.Kind() == reflect.Struct {
		return t
	}

	return nil
}

// jsonName maps a Go field path from encoding/json back to the wire name.
func jsonName(rootType reflect.Type, goPath string) string {
	goPath = strings.TrimSpace(goPath)
	if rootType == nil || goPath == "" {
		return goPath
	}

	// flat payloads: the last segment is the field
	if i := strings.LastIndex(goPath, "."); i >= 0 {
		goPath = goPath[i+1:]
	}

	for i := 0; i < rootType.NumField(); i++ {
		sf := rootType.Field(i)
		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if sf.Name == goPath || name == goPath {
			if name == "" || name == "-" {
				return sf.Name
			}
			return name
		}
	}

	return goPath
}
