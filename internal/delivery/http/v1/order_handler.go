package v1

import (
	"io"
	"net/http"

	"greencart/internal/delivery/http/middleware"
	"greencart/internal/domain"
	"greencart/internal/usecase"
	"greencart/pkg/utils"
)

const maxWebhookBody = 65536

type OrderHandler struct {
	orderUC *usecase.OrderUsecase
}

func NewOrderHandler(orderUC *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{orderUC: orderUC}
}

func (h *OrderHandler) PlaceCOD(w http.ResponseWriter, r *http.Request) {
	var req domain.PlaceOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}
	order, err := h.orderUC.PlaceCOD(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteSuccess(w, http.StatusCreated, utils.Payload{"message": "Order Placed Successfully", "order": order})
}

func (h *OrderHandler) PlaceStripe(w http.ResponseWriter, r *http.Request) {
	var req domain.PlaceOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}
	url, err := h.orderUC.PlaceOnline(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, utils.Payload{"url": url})
}

func (h *OrderHandler) UserOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderUC.UserOrders(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, utils.Payload{"orders": orders})
}

func (h *OrderHandler) SellerOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderUC.SellerOrders(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, utils.Payload{"orders": orders})
}

// StripeWebhook verifies and applies payment provider events. It needs
// the raw body for signature checks.
func (h *OrderHandler) StripeWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.orderUC.HandlePaymentEvent(r.Context(), payload, r.Header.Get("Stripe-Signature")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"received": true})
}
