package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wkddns40/week-3/internal/app"
	"github.com/wkddns40/week-3/internal/domain"
)

const ConsultPath = "/api/consult"

// User-facing messages. The front-end is Korean-only.
const (
	msgMissingFields    = "모든 필드를 입력해주세요."
	msgMissingAPIKey    = "API 키가 설정되지 않았습니다."
	msgAnalysisFailed   = "AI 분석 중 오류가 발생했습니다."
	msgServerError      = "서버 오류가 발생했습니다."
	msgMethodNotAllowed = "Method not allowed"
)

var disallowedMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodConnect,
	http.MethodTrace,
	echo.PROPFIND,
	echo.REPORT,
}

type Handler struct {
	svc *app.ConsultService
}

func NewHandler(svc *app.ConsultService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.OPTIONS(ConsultPath, h.Preflight)
	e.POST(ConsultPath, h.Consult)
	e.Match(disallowedMethods, ConsultPath, h.MethodNotAllowed)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) Preflight(c echo.Context) error {
	header := c.Response().Header()
	header.Set(echo.HeaderAccessControlAllowOrigin, "*")
	header.Set(echo.HeaderAccessControlAllowMethods, "POST, OPTIONS")
	header.Set(echo.HeaderAccessControlAllowHeaders, "Content-Type")
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) MethodNotAllowed(c echo.Context) error {
	return c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Error: msgMethodNotAllowed})
}

func (h *Handler) Consult(c echo.Context) error {
	var req ConsultRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgMissingFields})
	}

	res, err := h.svc.Consult(c.Request().Context(), req.toDomain())
	if err != nil {
		return mapError(c, err)
	}

	c.Response().Header().Set(echo.HeaderAccessControlAllowOrigin, "*")
	return c.JSON(http.StatusOK, toResponse(res))
}

func mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	var upstream *domain.UpstreamError
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgMissingFields})
	case errors.Is(err, domain.ErrMissingAPIKey):
		slog.Error("OPENAI_API_KEY is not set", "request_id", requestID)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgMissingAPIKey})
	case errors.As(err, &upstream) && errors.Is(err, domain.ErrUpstreamReport):
		slog.Error("upstream report failure", "request_id", requestID, "status", upstream.Status, "body", upstream.Body)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgAnalysisFailed, Details: upstream.Body})
	default:
		slog.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgServerError})
	}
}

// ErrorHandler renders framework errors and recovered panics as ErrorResponse.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := msgServerError

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			msg = http.StatusText(he.Code)
			if m, ok := he.Message.(string); ok {
				msg = m
			}
		} else {
			logger.Error("unhandled error", "request_id", c.Get("request_id"), "error", err)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, ErrorResponse{Error: msg})
		}
		if err != nil {
			logger.Error("write error response", "error", err)
		}
	}
}
