package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Context единый для процесса контекст личности
// Устанавливается при логине, очищается при логауте, в остальных местах только читается
type Context struct {
	mu        sync.RWMutex
	store     Store
	current   *Identity
	listeners []func(*Identity)
	logger    Logger
}

// NewContext создает контекст поверх хранилища
func NewContext(store Store, logger Logger) *Context {
	return &Context{
		store:  store,
		logger: logger,
	}
}

// Restore поднимает сохранённую личность при старте процесса
// Отсутствие личности не ошибка: клиент остаётся неаутентифицированным
func (c *Context) Restore(ctx context.Context) error {
	identity, err := c.store.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrNoIdentity) {
			c.logger.Info("Restore: no stored identity")
			return nil
		}
		c.logger.Error("Restore: failed to load identity: %v", err)
		return fmt.Errorf("%w: restore: %v", ErrStorage, err)
	}
	if !identity.Valid() {
		c.logger.Warn("Restore: stored identity has no user id, ignoring")
		return nil
	}

	c.set(identity)
	c.logger.Info("Restore: identity restored for user=%d role=%s", identity.User.EffectiveID(), identity.User.Role)
	return nil
}

// Login сохраняет личность и делает её текущей
func (c *Context) Login(ctx context.Context, identity Identity) error {
	if !identity.Valid() {
		return ErrInvalidIdentity
	}
	if err := c.store.Save(ctx, &identity); err != nil {
		c.logger.Error("Login: failed to persist identity for user=%d: %v", identity.User.EffectiveID(), err)
		return fmt.Errorf("%w: login: %v", ErrStorage, err)
	}

	c.set(&identity)
	c.logger.Info("Login: user=%d role=%s signed in", identity.User.EffectiveID(), identity.User.Role)
	return nil
}

// Logout очищает хранилище и текущую личность
// Текущая личность сбрасывается даже если хранилище вернуло ошибку
func (c *Context) Logout(ctx context.Context) error {
	storeErr := c.store.Clear(ctx)
	c.set(nil)

	if storeErr != nil {
		c.logger.Error("Logout: failed to clear stored identity: %v", storeErr)
		return fmt.Errorf("%w: logout: %v", ErrStorage, storeErr)
	}
	c.logger.Info("Logout: identity cleared")
	return nil
}

// Current возвращает копию текущей личности
func (c *Context) Current() (Identity, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.current == nil {
		return Identity{}, false
	}
	return *c.current, true
}

// Require возвращает текущую личность или ErrNotAuthenticated
func (c *Context) Require() (Identity, error) {
	identity, ok := c.Current()
	if !ok {
		return Identity{}, ErrNotAuthenticated
	}
	return identity, nil
}

// Token возвращает bearer-токен или пустую строку
func (c *Context) Token() string {
	identity, _ := c.Current()
	return identity.Token
}

// OnChange регистрирует слушателя смены личности (nil означает логаут)
func (c *Context) OnChange(fn func(*Identity)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

func (c *Context) set(identity *Identity) {
	c.mu.Lock()
	c.current = identity
	listeners := append([]func(*Identity){}, c.listeners...)
	c.mu.Unlock()

	for _, fn := range listeners {
		if identity == nil {
			fn(nil)
			continue
		}
		copied := *identity
		fn(&copied)
	}
}
