package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/screenlux/screenlux-backend/internal/catalog"
	"github.com/screenlux/screenlux-backend/internal/screen"
	"github.com/screenlux/screenlux-backend/internal/session"
)

// Handler exposes the configurator engine over HTTP. All pricing lives in
// internal/screen; handlers only parse, call, log and render.
type Handler struct {
	store   *session.Store
	loader  *catalog.Loader
	storeID string
}

func NewHandler(store *session.Store, loader *catalog.Loader, storeID string) *Handler {
	return &Handler{store: store, loader: loader, storeID: storeID}
}

func (h *Handler) catalog() (*catalog.Catalog, error) {
	return h.loader.Load(h.storeID)
}

// ============================================================
// Sessions
// ============================================================

// CreateSession starts a new shopper session with one blank screen.
func (h *Handler) CreateSession(c fiber.Ctx) error {
	sess, err := h.store.Create(context.Background())
	if err != nil {
		log.Printf("[SESSION] create: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "could not create session"})
	}
	return c.Status(http.StatusCreated).JSON(sess)
}

// GetSession returns the current session state.
func (h *Handler) GetSession(c fiber.Ctx) error {
	sess, ok := h.loadSession(c)
	if !ok {
		return nil
	}
	return c.JSON(sess)
}

// AddScreen appends a blank screen to the session.
func (h *Handler) AddScreen(c fiber.Ctx) error {
	sess, ok := h.loadSession(c)
	if !ok {
		return nil
	}
	sess.AddScreen()
	if !h.saveSession(c, sess) {
		return nil
	}
	return c.Status(http.StatusCreated).JSON(sess)
}

type screenUpdate struct {
	WidthMM      *int    `json:"width_mm"`
	HeightMM     *int    `json:"height_mm"`
	FrameColor   *string `json:"frame_color"`
	FabricColor  *string `json:"fabric_color"`
	FabricType   *string `json:"fabric_type"`
	CassetteSize *string `json:"cassette_size"`
	Motor        *string `json:"motor"`
}

// UpdateScreen edits the screen at :idx and re-validates it.
func (h *Handler) UpdateScreen(c fiber.Ctx) error {
	sess, ok := h.loadSession(c)
	if !ok {
		return nil
	}
	idx, ok := h.screenIndex(c, sess)
	if !ok {
		return nil
	}

	var req screenUpdate
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	sc := &sess.Screens[idx]
	if req.WidthMM != nil {
		sc.WidthMM = *req.WidthMM
	}
	if req.HeightMM != nil {
		sc.HeightMM = *req.HeightMM
	}
	if req.FrameColor != nil {
		sc.FrameColor = *req.FrameColor
	}
	if req.FabricColor != nil {
		sc.FabricColor = *req.FabricColor
	}
	if req.FabricType != nil {
		sc.FabricType = *req.FabricType
	}
	if req.CassetteSize != nil {
		sc.CassetteSize = *req.CassetteSize
	}
	if req.Motor != nil {
		sc.Motor = *req.Motor
	}

	cat, err := h.catalog()
	if err != nil {
		return h.catalogError(c, err)
	}
	valid, msg := screen.ValidateDimensions(sc.WidthMM, sc.HeightMM, cat.Bounds)
	sc.Valid = valid

	if !h.saveSession(c, sess) {
		return nil
	}
	return c.JSON(fiber.Map{
		"screen": sc,
		"valid":  valid,
		"error":  nilIfEmpty(msg),
	})
}

// DuplicateScreen deep-copies the screen at :idx under a new identity.
func (h *Handler) DuplicateScreen(c fiber.Ctx) error {
	sess, ok := h.loadSession(c)
	if !ok {
		return nil
	}
	idx, ok := h.screenIndex(c, sess)
	if !ok {
		return nil
	}
	if _, err := sess.DuplicateScreen(idx); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if !h.saveSession(c, sess) {
		return nil
	}
	return c.Status(http.StatusCreated).JSON(sess)
}

// DeleteScreen removes the screen at :idx, keeping at least one.
func (h *Handler) DeleteScreen(c fiber.Ctx) error {
	sess, ok := h.loadSession(c)
	if !ok {
		return nil
	}
	idx, ok := h.screenIndex(c, sess)
	if !ok {
		return nil
	}
	if err := sess.RemoveScreen(idx); err != nil {
		return c.Status(http.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	if !h.saveSession(c, sess) {
		return nil
	}
	return c.JSON(sess)
}

type installationRequest struct {
	Install   string `json:"install"` // "self" | "professional"
	BracketID string `json:"bracket_id"`
}

// SetInstallation sets the installation method and optional bracket.
func (h *Handler) SetInstallation(c fiber.Ctx) error {
	sess, ok := h.loadSession(c)
	if !ok {
		return nil
	}

	var req installationRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	switch screen.InstallMethod(req.Install) {
	case screen.InstallSelf, screen.InstallProfessional:
	default:
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "install must be self or professional"})
	}

	sess.Install = screen.InstallMethod(req.Install)
	sess.BracketID = ""
	if sess.Install == screen.InstallSelf {
		sess.BracketID = req.BracketID
	}

	if !h.saveSession(c, sess) {
		return nil
	}
	return c.JSON(sess)
}

type accessoryRequest struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"` // 0 removes
}

// SetAccessory stores an accessory quantity; zero removes it.
func (h *Handler) SetAccessory(c fiber.Ctx) error {
	sess, ok := h.loadSession(c)
	if !ok {
		return nil
	}

	var req accessoryRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if req.ID == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "accessory id required"})
	}
	sess.SetAccessory(req.ID, req.Quantity)

	if !h.saveSession(c, sess) {
		return nil
	}
	return c.JSON(sess)
}

// ============================================================
// Quote & cart
// ============================================================

// Quote prices a configuration from query params without touching a session.
func (h *Handler) Quote(c fiber.Ctx) error {
	width, ok, msg := parseIntQuery(c, "width")
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "missing param width"})
	}
	if msg != "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}
	height, ok, msg := parseIntQuery(c, "height")
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "missing param height"})
	}
	if msg != "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	cat, err := h.catalog()
	if err != nil {
		return h.catalogError(c, err)
	}

	sc := screen.Config{
		WidthMM:      width,
		HeightMM:     height,
		FabricType:   c.Query("fabric_type"),
		CassetteSize: c.Query("cassette"),
		Motor:        c.Query("motor"),
	}
	valid, vmsg := screen.ValidateDimensions(sc.WidthMM, sc.HeightMM, cat.Bounds)
	if !valid {
		return c.JSON(fiber.Map{"valid": false, "error": vmsg})
	}

	cost := screen.CalculateCost(sc, cat.Rules, cat.Bounds)
	m, ok := screen.ResolveBySKU(cost, cat.Variants)
	if !ok {
		return c.Status(http.StatusConflict).JSON(fiber.Map{
			"valid": true,
			"cost":  cost,
			"error": "catalog has no variants",
		})
	}
	if m.Kind == screen.MatchFallback {
		log.Printf("[QUOTE] fallback match for cost %d: variant %s", cost, m.Variant.ID)
	}
	return c.JSON(fiber.Map{
		"valid":   true,
		"cost":    cost,
		"variant": m.Variant,
		"match":   m.Kind.String(),
	})
}

// CartPayload builds the cart submission for the external transport.
func (h *Handler) CartPayload(c fiber.Ctx) error {
	sess, ok := h.loadSession(c)
	if !ok {
		return nil
	}
	cat, err := h.catalog()
	if err != nil {
		return h.catalogError(c, err)
	}

	payload, issues := screen.BuildPayload(sess, cat)
	for _, issue := range issues {
		log.Printf("[CART] session %s: %v", sess.ID, issue)
	}
	return c.JSON(payload)
}

// ============================================================
// Helpers
// ============================================================

func (h *Handler) loadSession(c fiber.Ctx) (*screen.Session, bool) {
	id := c.Params("id")
	sess, err := h.store.Get(context.Background(), id)
	if err != nil {
		if err == session.ErrNotFound {
			_ = c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
		} else {
			log.Printf("[SESSION] get %s: %v", id, err)
			_ = c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "could not load session"})
		}
		return nil, false
	}
	return sess, true
}

func (h *Handler) saveSession(c fiber.Ctx, sess *screen.Session) bool {
	if err := h.store.Save(context.Background(), sess); err != nil {
		log.Printf("[SESSION] save %s: %v", sess.ID, err)
		_ = c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "could not save session"})
		return false
	}
	return true
}

func (h *Handler) screenIndex(c fiber.Ctx, sess *screen.Session) (int, bool) {
	idx, err := strconv.Atoi(c.Params("idx"))
	if err != nil || idx < 0 || idx >= len(sess.Screens) {
		_ = c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid screen index"})
		return 0, false
	}
	return idx, true
}

func (h *Handler) catalogError(c fiber.Ctx, err error) error {
	log.Printf("[CATALOG] load: %v", err)
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "catalog unavailable"})
}

func parseIntQuery(c fiber.Ctx, key string) (int, bool, string) {
	s := c.Query(key)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, true, "invalid " + key
	}
	return v, true, ""
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
