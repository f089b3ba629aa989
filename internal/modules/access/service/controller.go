package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"signal_bot/internal/models"
	stateservice "signal_bot/internal/modules/state/service"
	"signal_bot/pkg/logger"

	"github.com/google/uuid"
)

const DefaultCapacity = 100

var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrCapacityExceeded = errors.New("free tier is full")
	ErrAlreadyMember    = errors.New("already a member")
	ErrNotFound         = errors.New("user not found")
	ErrInvalidDays      = errors.New("duration must be positive")
)

type set map[string]struct{}

func (s set) has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s set) sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Controller владеет разбиением пользователей на free/paid/admin.
// Каждая мутация это одна критическая секция, снапшот пишется до отпускания мьютекса.
type Controller struct {
	mainAdmin string
	capacity  int
	now       func() time.Time
	store     stateservice.Store

	mu        sync.Mutex
	admins    set
	free      set
	paid      set
	expiry    map[string]time.Time
	languages map[string]string
	pending   map[string]models.PendingPayment
}

func NewController(mainAdmin string, capacity int, store stateservice.Store) *Controller {
	if capacity < 0 {
		capacity = DefaultCapacity
	}
	c := &Controller{
		mainAdmin: mainAdmin,
		capacity:  capacity,
		now:       time.Now,
		store:     store,
		admins:    set{},
		free:      set{},
		paid:      set{},
		expiry:    map[string]time.Time{},
		languages: map[string]string{},
		pending:   map[string]models.PendingPayment{},
	}
	c.seedLocked()
	return c
}

// WithClock подменяет часы (тесты).
func (c *Controller) WithClock(now func() time.Time) *Controller {
	c.now = now
	return c
}

// главный админ всегда админ и платный без срока
func (c *Controller) seedLocked() {
	if c.mainAdmin == "" {
		return
	}
	c.admins[c.mainAdmin] = struct{}{}
	c.paid[c.mainAdmin] = struct{}{}
	delete(c.expiry, c.mainAdmin)
}

func (c *Controller) MainAdmin() string { return c.mainAdmin }
func (c *Controller) Capacity() int     { return c.capacity }

// ---- admins ----

func (c *Controller) IsAdmin(userID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.admins.has(userID)
}

func (c *Controller) IsMainAdmin(userID string) bool {
	return userID != "" && userID == c.mainAdmin
}

// AddAdmin может только главный админ.
func (c *Controller) AddAdmin(actor, target string) error {
	if !c.IsMainAdmin(actor) {
		return ErrPermissionDenied
	}
	target = strings.TrimSpace(target)
	if target == "" {
		return ErrNotFound
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.admins.has(target) {
		return ErrAlreadyMember
	}
	c.admins[target] = struct{}{}
	c.persistLocked()
	return nil
}

// RemoveAdmin главного админа снять нельзя никому.
func (c *Controller) RemoveAdmin(actor, target string) error {
	if !c.IsMainAdmin(actor) || c.IsMainAdmin(target) {
		return ErrPermissionDenied
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.admins.has(target) {
		return ErrNotFound
	}
	delete(c.admins, target)
	c.persistLocked()
	return nil
}

func (c *Controller) Admins() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.admins.sorted()
}

// ---- access ----

// HasAccess чистая проверка членства; просрочка чистится отдельно в SweepExpired.
func (c *Controller) HasAccess(userID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.admins.has(userID) || c.free.has(userID) || c.paid.has(userID)
}

// JoinFreeTier единственные ворота во free. Выданное место не отзывается.
func (c *Controller) JoinFreeTier(userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.free.has(userID) || c.paid.has(userID) {
		return ErrAlreadyMember
	}
	if len(c.free) >= c.capacity {
		return ErrCapacityExceeded
	}
	c.free[userID] = struct{}{}
	c.persistLocked()
	return nil
}

func (c *Controller) TryJoinFreeTier(userID string) bool {
	return c.JoinFreeTier(userID) == nil
}

// GrantPaid: убрать из free, добавить в paid, выставить срок. Одной секцией.
func (c *Controller) GrantPaid(userID string, days int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.grantPaidLocked(userID, days); err != nil {
		return err
	}
	c.persistLocked()
	return nil
}

func (c *Controller) grantPaidLocked(userID string, days int) error {
	if days <= 0 {
		return ErrInvalidDays
	}
	if strings.TrimSpace(userID) == "" {
		return ErrNotFound
	}
	delete(c.free, userID)
	c.paid[userID] = struct{}{}
	if userID == c.mainAdmin {
		return nil
	}
	c.expiry[userID] = c.now().Add(time.Duration(days) * 24 * time.Hour)
	return nil
}

// RemovePaid /removeuser. Главного админа не трогаем.
func (c *Controller) RemovePaid(userID string) error {
	if c.IsMainAdmin(userID) {
		return ErrPermissionDenied
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.paid.has(userID) {
		return ErrNotFound
	}
	delete(c.paid, userID)
	delete(c.expiry, userID)
	c.persistLocked()
	return nil
}

// SweepExpired убирает платных с expiry < now. Возвращает снятых.
func (c *Controller) SweepExpired() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	var removed []string
	for id, exp := range c.expiry {
		if !exp.Before(now) {
			continue
		}
		delete(c.paid, id)
		delete(c.expiry, id)
		removed = append(removed, id)
	}
	if len(removed) == 0 {
		return nil
	}
	sort.Strings(removed)
	c.persistLocked()
	return removed
}

// Recipients: free ∪ paid, пока общее число <= capacity; иначе только paid.
// Переключение глобальное, не по каждому пользователю.
func (c *Controller) Recipients() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	all := set{}
	for id := range c.free {
		all[id] = struct{}{}
	}
	for id := range c.paid {
		all[id] = struct{}{}
	}
	if len(all) <= c.capacity {
		return all.sorted()
	}
	return c.paid.sorted()
}

// ---- identity ----

func (c *Controller) Tier(userID string) models.Tier {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tierLocked(userID)
}

func (c *Controller) tierLocked(userID string) models.Tier {
	switch {
	case c.admins.has(userID):
		return models.TierAdmin
	case c.paid.has(userID):
		return models.TierPaid
	case c.free.has(userID):
		return models.TierFree
	default:
		return models.TierNone
	}
}

func (c *Controller) Identity(userID string) models.UserIdentity {
	c.mu.Lock()
	defer c.mu.Unlock()

	u := models.UserIdentity{
		UserID:   userID,
		Tier:     c.tierLocked(userID),
		Language: c.languages[userID],
	}
	if exp, ok := c.expiry[userID]; ok {
		e := exp
		u.SubscriptionExpiry = &e
	}
	return u
}

func (c *Controller) Language(userID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	lang, ok := c.languages[userID]
	return lang, ok
}

func (c *Controller) SetLanguage(userID, lang string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.languages[userID] == lang {
		return
	}
	c.languages[userID] = lang
	c.persistLocked()
}

// ---- payments ----

// SubmitPayment заявка /paid; повторная заявка перезаписывает прошлую.
func (c *Controller) SubmitPayment(userID, method, txHash string) models.PendingPayment {
	p := models.PendingPayment{
		ID:          uuid.New().String(),
		UserID:      userID,
		Method:      strings.ToUpper(method),
		TxHash:      txHash,
		Status:      "pending",
		SubmittedAt: c.now(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending[userID] = p
	c.persistLocked()
	return p
}

func (c *Controller) Pending() []models.PendingPayment {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.PendingPayment, 0, len(c.pending))
	for _, p := range c.pending {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt.Before(out[j].SubmittedAt) })
	return out
}

// Verify подтверждает оплату: grant paid + снять заявку.
func (c *Controller) Verify(userID string, days int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.grantPaidLocked(userID, days); err != nil {
		return err
	}
	delete(c.pending, userID)
	c.persistLocked()
	return nil
}

// ---- stats ----

type Stats struct {
	Free     int
	Paid     int
	Admins   int
	Total    int // |free ∪ paid|
	Capacity int
	Pending  int
}

func (s Stats) FreeRemaining() int {
	if s.Free >= s.Capacity {
		return 0
	}
	return s.Capacity - s.Free
}

func (c *Controller) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := len(c.paid)
	for id := range c.free {
		if !c.paid.has(id) {
			total++
		}
	}
	return Stats{
		Free:     len(c.free),
		Paid:     len(c.paid),
		Admins:   len(c.admins),
		Total:    total,
		Capacity: c.capacity,
		Pending:  len(c.pending),
	}
}

// Members списки для /listusers
func (c *Controller) Members() (free, paid []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.free.sorted(), c.paid.sorted()
}

// ---- persistence ----

type snapshot struct {
	Admins    []string                         `json:"admins"`
	Free      []string                         `json:"free"`
	Paid      []string                         `json:"paid"`
	Expiry    map[string]time.Time             `json:"expiry"`
	Languages map[string]string                `json:"languages"`
	Pending   map[string]models.PendingPayment `json:"pending"`
}

func (c *Controller) Restore(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	var snap snapshot
	ok, err := c.store.Load(ctx, stateservice.KeyAccess, &snap)
	if err != nil || !ok {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.admins = toSet(snap.Admins)
	c.free = toSet(snap.Free)
	c.paid = toSet(snap.Paid)
	c.expiry = map[string]time.Time{}
	for k, v := range snap.Expiry {
		c.expiry[k] = v
	}
	c.languages = map[string]string{}
	for k, v := range snap.Languages {
		c.languages[k] = v
	}
	c.pending = map[string]models.PendingPayment{}
	for k, v := range snap.Pending {
		c.pending[k] = v
	}
	c.seedLocked()
	return nil
}

func toSet(ids []string) set {
	s := make(set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (c *Controller) persistLocked() {
	if c.store == nil {
		return
	}
	snap := snapshot{
		Admins:    c.admins.sorted(),
		Free:      c.free.sorted(),
		Paid:      c.paid.sorted(),
		Expiry:    make(map[string]time.Time, len(c.expiry)),
		Languages: make(map[string]string, len(c.languages)),
		Pending:   make(map[string]models.PendingPayment, len(c.pending)),
	}
	for k, v := range c.expiry {
		snap.Expiry[k] = v
	}
	for k, v := range c.languages {
		snap.Languages[k] = v
	}
	for k, v := range c.pending {
		snap.Pending[k] = v
	}
	if err := c.store.Save(context.Background(), stateservice.KeyAccess, snap); err != nil {
		logger.Error("[ACCESS] persist: %v", err)
	}
}
