package controller

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cftl_backend/internals/configs"
	helper "cftl_backend/internals/helpers"
	"cftl_backend/internals/helpers/storage"
)

const (
	signedURLTTL = 5 * time.Minute
	viewURLTTL   = 15 * time.Minute
	imageFolder  = "images"
)

type UploadController struct {
	Storage storage.ObjectStorage
}

type SignedURLRequest struct {
	FileType string `json:"fileType"`
	FileName string `json:"fileName"`
}

// POST /api/uploads/signed-url (parent)
func (ctl *UploadController) GetSignedURL(c *fiber.Ctx) error {
	var req SignedURLRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.FileType = strings.TrimSpace(req.FileType)
	req.FileName = strings.TrimSpace(req.FileName)
	if req.FileType == "" || req.FileName == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Missing fileType or fileName")
	}
	if ctl.Storage == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, storage.ErrNotConfigured.Error())
	}

	key := fmt.Sprintf("%s%s_%s", storage.ReceiptPrefix, uuid.NewString(), helper.SanitizeFilename(req.FileName))
	uploadURL, err := ctl.Storage.SignPutURL(key, req.FileType, signedURLTTL)
	if err != nil {
		configs.Log.WithError(err).Error("sign upload url failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not generate signed URL")
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"uploadUrl":  uploadURL,
		"receiptUrl": ctl.Storage.PublicURL(key),
	})
}

// POST /api/images (public)
func (ctl *UploadController) UploadImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		fh = firstFile(c)
	}
	if fh == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "No file uploaded")
	}

	url, err := storage.UploadImage(c.UserContext(), ctl.Storage, fh, imageFolder)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUnsupportedImage):
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, storage.ErrNotConfigured):
			return helper.JsonError(c, fiber.StatusServiceUnavailable, err.Error())
		}
		configs.Log.WithError(err).Error("image upload failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Image upload failed")
	}
	return helper.JsonOK(c, "ok", fiber.Map{"imageUrl": url})
}

// GET /api/uploads/view-url?key= (admin|coordinator)
func (ctl *UploadController) GetViewURL(c *fiber.Ctx) error {
	key := strings.TrimLeft(strings.TrimSpace(c.Query("key")), "/")
	if key == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "key is required")
	}
	if ctl.Storage == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, storage.ErrNotConfigured.Error())
	}
	// receipt URLs are accepted as well as bare keys
	if strings.Contains(key, "://") {
		k, err := ctl.Storage.KeyFromURL(key)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Unknown object URL")
		}
		key = k
	}
	viewURL, err := ctl.Storage.SignGetURL(key, viewURLTTL)
	if err != nil {
		configs.Log.WithError(err).Error("sign view url failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not generate signed URL")
	}
	return helper.JsonOK(c, "ok", fiber.Map{"viewUrl": viewURL, "expiresIn": int(viewURLTTL.Seconds())})
}

func firstFile(c *fiber.Ctx) *multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	for _, fhs := range form.File {
		if len(fhs) > 0 {
			return fhs[0]
		}
	}
	return nil
}
