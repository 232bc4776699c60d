package controllers

import (
	"net/http"

	"github.com/ateliernoir/ateliernoir-backend/api/responses"
	"github.com/ateliernoir/ateliernoir-backend/internal/content"
	pkgerrors "github.com/ateliernoir/ateliernoir-backend/pkg/errors"
	"github.com/ateliernoir/ateliernoir-backend/pkg/logger"
)

// HomeContent serves the landing page payload: hero carousel, current
// announcement banner and editorial grid.
func HomeContent(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content service unavailable"))
			return
		}

		home, err := svc.Home(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, home)
	}
}

// Announcements lists every active banner.
func Announcements(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content service unavailable"))
			return
		}

		rows, err := svc.Announcements(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}
