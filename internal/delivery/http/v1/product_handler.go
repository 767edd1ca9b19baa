package v1

import (
	"net/http"

	"greencart/internal/domain"
	"greencart/internal/usecase"
	"greencart/pkg/utils"
)

type ProductHandler struct {
	productUC *usecase.ProductUsecase
	maxUpload int64
}

func NewProductHandler(productUC *usecase.ProductUsecase, maxUploadSizeMB int64) *ProductHandler {
	return &ProductHandler{productUC: productUC, maxUpload: maxUploadSizeMB << 20}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productUC.List(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, utils.Payload{"products": products})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.productUC.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, utils.Payload{"product": product})
}

// Add takes a multipart form: productData holds the listing as JSON and
// images holds the photos.
func (h *ProductHandler) Add(w http.ResponseWriter, r *http.Request) {
	if !parseMultipart(w, r, h.maxUpload*usecase.MaxProductImages) {
		return
	}

	var in domain.NewProduct
	if err := utils.DecodeJSONString(r.FormValue("productData"), &in); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid product data")
		return
	}

	files, closeFiles, err := formFiles(r, "images")
	defer closeFiles()
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid file")
		return
	}

	product, err := h.productUC.Add(r.Context(), in, files)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteSuccess(w, http.StatusCreated, utils.Payload{"message": "Product Added", "product": product})
}

func (h *ProductHandler) ChangeStock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID      string `json:"id"`
		InStock bool   `json:"inStock"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.productUC.SetStock(r.Context(), req.ID, req.InStock); err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteMessage(w, "Stock Updated")
}
