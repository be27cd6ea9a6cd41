package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MeResponse struct {
	PublicID  string `json:"publicId"`
	SeenCount int64  `json:"seenCount"`
	Attempts  int64  `json:"attempts"`
}

type RestoreReq struct {
	PublicID string `json:"publicId"`
}

// GET /api/v1/me
func GetMe(db *gorm.DB, seen *SeenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := currentVisitorID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no visitor"})
			return
		}
		pubID := c.GetString(ctxVisitorPubID)

		n, err := seen.Count(c.Request.Context(), uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}
		var attempts int64
		if err := db.Model(&Attempt{}).Where("visitor_id = ?", uid).Count(&attempts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}
		c.JSON(http.StatusOK, MeResponse{PublicID: pubID, SeenCount: n, Attempts: attempts})
	}
}

// DELETE /api/v1/me/seen
func ResetSeen(seen *SeenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := currentVisitorID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no visitor"})
			return
		}
		n, err := seen.Reset(c.Request.Context(), uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cleared": n})
	}
}

// POST /api/v1/me/restore moves this browser onto an existing visitor, so a
// seen record and attempt history can follow the user to another device.
func RestoreVisitor(db *gorm.DB, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RestoreReq
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.PublicID) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "publicId required"})
			return
		}
		v, err := findVisitor(c.Request.Context(), db, strings.TrimSpace(req.PublicID))
		if err != nil {
			if errors.Is(err, ErrVisitorNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": ErrVisitorNotFound.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}
		setVisitorCookie(c, v.PublicID, secureCookies)
		c.JSON(http.StatusOK, gin.H{"status": "restored"})
	}
}
