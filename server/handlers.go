package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"dupfinder/database"
	"dupfinder/utils"
)

const (
	uploadField      = "files[]"
	maxMemoryForForm = 32 << 20
)

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > s.cfg.MaxUploadBytes {
		respondWithError(w, http.StatusRequestEntityTooLarge, "File too large")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	if err := r.ParseMultipartForm(maxMemoryForForm); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		s.log.WithError(err).Debug("cannot parse upload form")
		respondWithError(w, http.StatusBadRequest, "No files uploaded")
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File[uploadField]
	if len(files) == 0 {
		respondWithError(w, http.StatusBadRequest, "No files uploaded")
		return
	}

	// per-request scratch directory, concurrent uploads may share file names
	scratch, err := os.MkdirTemp(s.cfg.UploadDir, "upload-*")
	if err != nil {
		s.log.WithError(err).Error("cannot create upload directory")
		respondWithError(w, http.StatusInternalServerError, "Cannot store uploaded files")
		return
	}
	defer s.removeUploads(scratch)

	var uploaded []string

	for _, fh := range files {
		if !utils.AllowedFile(fh.Filename) {
			s.log.WithField("file", fh.Filename).Debug("rejecting file with disallowed extension")
			continue
		}
		name := utils.SanitizeFilename(fh.Filename)
		if name == "" {
			continue
		}

		path := filepath.Join(scratch, name)
		s.log.WithField("file", name).Debug("saving file")
		if err := saveUpload(fh, path); err != nil {
			s.log.WithField("file", fh.Filename).WithError(err).Error("error saving file")
			continue
		}
		uploaded = append(uploaded, path)
	}

	if len(uploaded) == 0 {
		respondWithError(w, http.StatusBadRequest, "No valid image files uploaded")
		return
	}

	s.log.Debugf("Processing %d files", len(uploaded))
	result, err := s.detector.DetectDuplicates(uploaded)
	if err != nil {
		s.log.WithError(err).Error("upload error")
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if s.cfg.RecordRuns && s.db != nil {
		if run, err := database.StoreRun(s.db, "upload", result); err != nil {
			s.log.WithError(err).Error("cannot record run")
		} else {
			s.log.WithField("run", run.ID).Debug("recorded run")
		}
	}

	respondWithJSON(w, http.StatusOK, result)
}

func saveUpload(fh *multipart.FileHeader, path string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

func (s *Server) removeUploads(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		s.log.WithField("path", dir).WithError(err).Error("error removing uploaded files")
	}
}

type deleteRequest struct {
	Duplicates *[]string `json:"duplicates"`
}

type deleteResponse struct {
	Success      bool     `json:"success"`
	DeletedFiles []string `json:"deleted_files"`
	Message      string   `json:"message"`
}

func (s *Server) handleDeleteDuplicates(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Duplicates == nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	deleted := []string{}
	for _, dup := range *req.Duplicates {
		name := utils.SanitizeFilename(dup)
		if name == "" {
			continue
		}
		path := filepath.Join(s.cfg.UploadDir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := os.Remove(path); err != nil {
			s.log.WithField("file", dup).WithError(err).Error("error deleting file")
			continue
		}
		deleted = append(deleted, dup)
		s.log.WithField("file", dup).Debug("deleted duplicate file")
	}

	respondWithJSON(w, http.StatusOK, deleteResponse{
		Success:      true,
		DeletedFiles: deleted,
		Message:      fmt.Sprintf("Successfully deleted %d duplicates", len(deleted)),
	})
}
