package v1

import (
	"net/http"

	"greencart/internal/delivery/http/middleware"
	"greencart/internal/domain"
	"greencart/internal/usecase"
	"greencart/pkg/utils"
)

type AddressHandler struct {
	addressUC *usecase.AddressUsecase
}

func NewAddressHandler(addressUC *usecase.AddressUsecase) *AddressHandler {
	return &AddressHandler{addressUC: addressUC}
}

type addressReq struct {
	Address domain.Address `json:"address"`
}

func (h *AddressHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addressReq
	if !decodeBody(w, r, &req) {
		return
	}
	addr, err := h.addressUC.Add(r.Context(), middleware.UserID(r.Context()), req.Address)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteSuccess(w, http.StatusCreated, utils.Payload{"message": "Address added", "address": addr})
}

func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	addresses, err := h.addressUC.List(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, utils.Payload{"addresses": addresses})
}

func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req addressReq
	if !decodeBody(w, r, &req) {
		return
	}
	addr, err := h.addressUC.Update(r.Context(), middleware.UserID(r.Context()), r.PathValue("id"), req.Address)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, utils.Payload{"message": "Address updated", "address": addr})
}

func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.addressUC.Delete(r.Context(), middleware.UserID(r.Context()), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteMessage(w, "Address deleted")
}
