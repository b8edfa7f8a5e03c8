// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-journal-vault/internal/app"
	"github.com/MKhiriev/go-journal-vault/internal/utils"
	"github.com/MKhiriev/go-journal-vault/models"
)

func (h *Handler) saveRecords(w http.ResponseWriter, r *http.Request) {
	const fn = "*Handler.saveRecords"

	accountID, err := accountIDParam(r)
	if err != nil {
		writeError(w, r, fn, err)
		return
	}

	var req models.SaveRecordsRequest
	if err = decodeBody(r, &req); err != nil {
		writeError(w, r, fn, err)
		return
	}
	if len(req.Records) == 0 {
		http.Error(w, app.MsgNoRecordsProvided, http.StatusBadRequest)
		return
	}
	if err = h.validator.Validate(r.Context(), req); err != nil {
		writeError(w, r, fn, fmt.Errorf("%w: %w", errInvalidRequest, err))
		return
	}

	if err = h.records.SaveRecords(r.Context(), accountID, req.ExpectedGeneration, req.Records...); err != nil {
		writeError(w, r, fn, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	const fn = "*Handler.listRecords"

	accountID, err := accountIDParam(r)
	if err != nil {
		writeError(w, r, fn, err)
		return
	}
	limit, err := uintQuery(r, "limit")
	if err != nil {
		writeError(w, r, fn, err)
		return
	}

	records, err := h.records.ListRecords(r.Context(), models.RecordQuery{
		AccountID: accountID,
		Kind:      r.URL.Query().Get("kind"),
		After:     r.URL.Query().Get("after"),
		Limit:     limit,
	})
	if err != nil {
		writeError(w, r, fn, err)
		return
	}

	writeRecords(w, records)
}

func (h *Handler) getRecord(w http.ResponseWriter, r *http.Request) {
	const fn = "*Handler.getRecord"

	accountID, err := accountIDParam(r)
	if err != nil {
		writeError(w, r, fn, err)
		return
	}

	record, err := h.records.GetRecord(r.Context(), accountID, chi.URLParam(r, "recordID"))
	if err != nil {
		writeError(w, r, fn, err)
		return
	}

	utils.WriteJSON(w, record, http.StatusOK)
}

func (h *Handler) findByToken(w http.ResponseWriter, r *http.Request) {
	const fn = "*Handler.findByToken"

	accountID, err := accountIDParam(r)
	if err != nil {
		writeError(w, r, fn, err)
		return
	}

	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, app.MsgNoTokenProvided, http.StatusBadRequest)
		return
	}

	records, err := h.records.FindByToken(r.Context(), accountID, token)
	if err != nil {
		writeError(w, r, fn, err)
		return
	}

	writeRecords(w, records)
}

func writeRecords(w http.ResponseWriter, records []models.EncryptedRecord) {
	if records == nil {
		records = []models.EncryptedRecord{}
	}
	utils.WriteJSON(w, records, http.StatusOK)
}
