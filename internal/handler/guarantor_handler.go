package handler

import (
	"io"
	"net/http"

	"lms/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /guarantor のAPI。認証必須。
type GuarantorHandler struct {
	uc *usecase.GuarantorUsecase
}

// DI
func NewGuarantorHandler(uc *usecase.GuarantorUsecase) *GuarantorHandler {
	return &GuarantorHandler{uc: uc}
}

func (h *GuarantorHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/guarantor", h.list)
	g.POST("/guarantor", h.create)
	g.GET("/guarantor/:id", h.get)
	g.PUT("/guarantor/:id", h.update)
	g.DELETE("/guarantor/:id", h.delete)

	g.POST("/guarantor/:id/photos", h.uploadPhotos)
	g.DELETE("/guarantor/images/:image_id", h.deletePhoto)
}

func (h *GuarantorHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *GuarantorHandler) get(c echo.Context) error {
	out, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *GuarantorHandler) create(c echo.Context) error {
	var in usecase.GuarantorInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("validation error"))
	}

	out, err := h.uc.Create(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *GuarantorHandler) update(c echo.Context) error {
	var in usecase.GuarantorInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("validation error"))
	}

	out, err := h.uc.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *GuarantorHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Deleted Guarantor"})
}

// multipartの files フィールドを全部読み込んでusecaseに渡す。
func (h *GuarantorHandler) uploadPhotos(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("validation error"))
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		return c.JSON(http.StatusBadRequest, errorJSON("no files"))
	}

	uploads := make([]usecase.PhotoUpload, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		src, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorJSON("validation error"))
		}

		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorJSON("validation error"))
		}

		uploads = append(uploads, usecase.PhotoUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	out, err := h.uc.UploadPhotos(c.Request().Context(), c.Param("id"), uploads)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *GuarantorHandler) deletePhoto(c echo.Context) error {
	if err := h.uc.DeletePhoto(c.Request().Context(), c.Param("image_id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Deleted image"})
}
