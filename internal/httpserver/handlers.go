package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"sams-storefront/internal/domain"
	cartsvc "sams-storefront/internal/service/cart"
	reservationsvc "sams-storefront/internal/service/reservation"
)

type handlers struct {
	deps   Deps
	logger logrus.FieldLogger
}

func (h *handlers) listMenu(c *gin.Context) {
	lang, err := h.language(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	items, err := h.deps.MenuSvc.List(c.Request.Context(), lang)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lang": lang, "items": items})
}

func (h *handlers) getMenuItem(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}
	lang, err := h.language(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	item, err := h.deps.MenuSvc.Get(c.Request.Context(), id, lang)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// language prefers the lang query parameter over the stored preference.
func (h *handlers) language(c *gin.Context) (domain.Lang, error) {
	if raw := c.Query("lang"); raw != "" {
		lang, err := domain.ParseLang(raw)
		if err != nil {
			return "", fmt.Errorf("%q: %w", raw, err)
		}
		return lang, nil
	}
	return h.deps.PreferenceSvc.Language(c.Request.Context(), sessionID(c))
}

func (h *handlers) getCart(c *gin.Context) {
	h.respondCart(c)(h.deps.CartSvc.Get(c.Request.Context(), sessionID(c)))
}

func (h *handlers) updateCart(c *gin.Context) {
	var in cartsvc.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, h.logger, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}
	h.respondCart(c)(h.deps.CartSvc.Update(c.Request.Context(), sessionID(c), in))
}

type addItemRequest struct {
	ItemID int `json:"itemId"`
}

func (h *handlers) addItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}
	h.respondCart(c)(h.deps.CartSvc.AddItem(c.Request.Context(), sessionID(c), req.ItemID))
}

func (h *handlers) incrementItem(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}
	h.respondCart(c)(h.deps.CartSvc.Increment(c.Request.Context(), sessionID(c), id))
}

func (h *handlers) decrementItem(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}
	h.respondCart(c)(h.deps.CartSvc.Decrement(c.Request.Context(), sessionID(c), id))
}

func (h *handlers) removeItem(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}
	h.respondCart(c)(h.deps.CartSvc.Remove(c.Request.Context(), sessionID(c), id))
}

type promoRequest struct {
	Code string `json:"code"`
}

func (h *handlers) applyPromo(c *gin.Context) {
	var req promoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}
	h.respondCart(c)(h.deps.CartSvc.ApplyPromoCode(c.Request.Context(), sessionID(c), req.Code))
}

func (h *handlers) getSurface(c *gin.Context) {
	snap, err := h.deps.CartSvc.Surface(c.Request.Context(), sessionID(c), c.Param("surface"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *handlers) openSurface(c *gin.Context) {
	snap, err := h.deps.CartSvc.OpenSurface(c.Request.Context(), sessionID(c), c.Param("surface"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *handlers) closeSurface(c *gin.Context) {
	snap, err := h.deps.CartSvc.CloseSurface(c.Request.Context(), sessionID(c), c.Param("surface"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *handlers) getLanguage(c *gin.Context) {
	lang, err := h.deps.PreferenceSvc.Language(c.Request.Context(), sessionID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lang": lang})
}

type languageRequest struct {
	Lang string `json:"lang"`
}

func (h *handlers) setLanguage(c *gin.Context) {
	var req languageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}
	lang, note, err := h.deps.PreferenceSvc.SetLanguage(c.Request.Context(), sessionID(c), req.Lang)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lang": lang, "notification": note})
}

func (h *handlers) listReservations(c *gin.Context) {
	list, err := h.deps.ReservationSvc.List(c.Request.Context(), sessionID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": list})
}

// createReservation answers 201 with the stored reservation, or 400 with the
// notice explaining which field was rejected.
func (h *handlers) createReservation(c *gin.Context) {
	var in reservationsvc.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, h.logger, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}
	lang, err := h.language(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	res, err := h.deps.ReservationSvc.Submit(c.Request.Context(), sessionID(c), in, lang)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if res.Reservation == nil {
		c.JSON(http.StatusBadRequest, res)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *handlers) itemID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		writeError(c, h.logger, fmt.Errorf("%w: bad item id %q", domain.ErrInvalidInput, c.Param("id")))
		return 0, false
	}
	return id, true
}

func (h *handlers) respondCart(c *gin.Context) func(*cartsvc.View, error) {
	return func(v *cartsvc.View, err error) {
		if err != nil {
			writeError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}
