// Package api exposes the grading pipeline and its helper tools as a
// JSON HTTP API consumable by automation callers.
package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"gradeassist-backend/lib/filestore"
	"gradeassist-backend/services/grader"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Deps struct {
	Grader grader.Service
	Files  filestore.Store
}

func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover())
	e.HTTPErrorHandler = errorHandler

	registerRoutes(e, deps)

	return e
}

// every pipeline error collapses into one generic failure response
// carrying the error's textual description
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	detail := err.Error()
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		detail = fmt.Sprint(httpErr.Message)
	}

	slog.ErrorContext(
		c.Request().Context(), "request failed",
		"path", c.Path(),
		"err", err,
	)
	err = c.JSON(code, map[string]string{"detail": detail})
	if err != nil {
		slog.ErrorContext(c.Request().Context(), "failed to write error response", "err", err)
	}
}
