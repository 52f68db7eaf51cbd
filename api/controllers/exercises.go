package controllers

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/fitnesspro/fitnesspro-backend/api/middleware"
	"github.com/fitnesspro/fitnesspro-backend/api/responses"
	"github.com/fitnesspro/fitnesspro-backend/api/validators"
	"github.com/fitnesspro/fitnesspro-backend/internal/exercises"
	"github.com/fitnesspro/fitnesspro-backend/pkg/config"
	"github.com/fitnesspro/fitnesspro-backend/pkg/enums"
	pkgerrors "github.com/fitnesspro/fitnesspro-backend/pkg/errors"
	"github.com/fitnesspro/fitnesspro-backend/pkg/logger"
)

// ListExercises returns the exercises visible to the caller: every public
// entry plus their own private ones.
func ListExercises(svc exercises.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := currentActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), actor, exercises.ListQuery{
			Search:      strings.TrimSpace(r.URL.Query().Get("search")),
			MuscleGroup: strings.TrimSpace(r.URL.Query().Get("muscle_group")),
			Difficulty:  strings.TrimSpace(r.URL.Query().Get("difficulty")),
			Page:        page,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func GetExercise(svc exercises.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := currentActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		exercise, err := svc.Get(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, exercise)
	}
}

func CreateExercise(svc exercises.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := currentActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body exercises.CreateExerciseInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		exercise, err := svc.Create(r.Context(), actor, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, exercise)
	}
}

func UpdateExercise(svc exercises.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := currentActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body exercises.UpdateExerciseInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		exercise, err := svc.Update(r.Context(), actor, id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, exercise)
	}
}

func DeleteExercise(svc exercises.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := currentActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), actor, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// UploadExerciseVideo accepts a multipart upload under the "video" field and
// attaches the stored clip to the exercise.
func UploadExerciseVideo(svc exercises.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := currentActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		file, header, err := openMultipartFile(r, "video", cfg.Media.MaxUploadMB)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		defer file.Close()

		url, err := svc.UploadVideo(r.Context(), actor, id, header.Filename, header.Header.Get("Content-Type"), file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"video_url": url})
	}
}

func currentActor(r *http.Request) (exercises.Actor, error) {
	userID, err := currentUserID(r)
	if err != nil {
		return exercises.Actor{}, err
	}
	return exercises.Actor{
		UserID: userID,
		Role:   enums.AppRole(middleware.RoleFromContext(r.Context())),
	}, nil
}

// openMultipartFile pulls one named file out of a multipart form, capping the
// request body at the configured upload size.
func openMultipartFile(r *http.Request, field string, maxMB int) (multipart.File, *multipart.FileHeader, error) {
	maxBytes := int64(maxMB) << 20
	r.Body = http.MaxBytesReader(nil, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form")
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "file is required").
			WithDetails(map[string]any{"field": field})
	}
	return file, header, nil
}
