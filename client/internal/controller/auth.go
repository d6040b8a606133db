package controller

import (
	"context"

	"github.com/maynagashev/inventory/client/internal/api"
	"github.com/maynagashev/inventory/client/internal/apperr"
	"github.com/maynagashev/inventory/client/internal/viewstate"
)

// Sessions - хранилище токена, которое нужно контроллерам аутентификации.
type Sessions interface {
	SaveToken(ctx context.Context, token string) error
	LatestToken(ctx context.Context) (string, bool, error)
	ClearTokens(ctx context.Context) error
}

// LoginState - форма входа и результат проверки сохраненной сессии.
// AccountID != 0 означает, что пользователь уже аутентифицирован.
type LoginState struct {
	Username  string
	Password  string
	LoginOK   bool
	AccountID int64
	viewstate.Status
}

func loginStatus(s *LoginState) *viewstate.Status { return &s.Status }

// CanSubmit сообщает, заполнены ли оба поля.
func (s LoginState) CanSubmit() bool {
	return s.Username != "" && s.Password != ""
}

// Login - контроллер экрана входа.
type Login struct {
	base[LoginState]
	completion
	auth     api.AuthAPI
	sessions Sessions
}

// NewLogin создает контроллер и проверяет сохраненный токен: при успехе заполняется AccountID.
func NewLogin(ctx context.Context, auth api.AuthAPI, sessions Sessions, opts ...Option) *Login {
	c := &Login{
		base:     newBase(ctx, LoginState{}, "login", opts),
		auth:     auth,
		sessions: sessions,
	}
	c.scope.Go(c.ResolveAccount)
	return c
}

// SetUsername меняет имя пользователя в форме.
func (c *Login) SetUsername(v string) {
	c.update(func(s LoginState) LoginState { s.Username = v; return s })
}

// SetPassword меняет пароль в форме.
func (c *Login) SetPassword(v string) {
	c.update(func(s LoginState) LoginState { s.Password = v; return s })
}

// ResolveAccount читает сохраненный токен и запрашивает по нему id пользователя.
// Без токена ничего не делает. Ошибка не мешает показать форму входа.
func (c *Login) ResolveAccount(ctx context.Context) {
	c.run(ctx, "auth.account", loginStatus,
		func(ctx context.Context) (func(LoginState) LoginState, error) {
			token, ok, err := c.sessions.LatestToken(ctx)
			if err != nil {
				return nil, sessionErr(err)
			}
			if !ok {
				return nil, nil
			}
			id, err := c.auth.Account(ctx, token)
			if err != nil {
				return nil, err
			}
			return func(s LoginState) LoginState {
				s.AccountID = id
				return s
			}, nil
		})
}

// Submit выполняет вход. Токен сохраняется до того, как выставляется LoginOK.
func (c *Login) Submit(ctx context.Context) {
	st := c.State()
	if err := required(field{"username", st.Username}, field{"password", st.Password}); err != nil {
		c.fail(loginStatus, err)
		return
	}
	username, password := st.Username, st.Password
	c.run(ctx, "auth.login", loginStatus,
		func(ctx context.Context) (func(LoginState) LoginState, error) {
			token, err := c.auth.Login(ctx, username, password)
			if err != nil {
				return nil, err
			}
			if err = c.sessions.SaveToken(ctx, token); err != nil {
				return nil, sessionErr(err)
			}
			return func(s LoginState) LoginState {
				s.LoginOK = true
				s.Password = ""
				c.sig.Fire()
				return s
			}, nil
		})
}

// ResetLoginOK сбрасывает признак успешного входа.
func (c *Login) ResetLoginOK() {
	c.sig.Drain()
	c.update(func(s LoginState) LoginState { s.LoginOK = false; return s })
}

// ClearError очищает ошибку.
func (c *Login) ClearError() { c.clear(loginStatus) }

// RegistrationState - форма регистрации.
type RegistrationState struct {
	Username       string
	Password       string
	RegistrationOK bool
	viewstate.Status
}

func registrationStatus(s *RegistrationState) *viewstate.Status { return &s.Status }

// CanSubmit сообщает, заполнены ли оба поля.
func (s RegistrationState) CanSubmit() bool {
	return s.Username != "" && s.Password != ""
}

// Registration - контроллер экрана регистрации.
type Registration struct {
	base[RegistrationState]
	completion
	auth api.AuthAPI
}

// NewRegistration создает контроллер пустой формы регистрации.
func NewRegistration(auth api.AuthAPI, opts ...Option) *Registration {
	return &Registration{
		base: newBase(context.Background(), RegistrationState{}, "registration", opts),
		auth: auth,
	}
}

// SetUsername меняет имя пользователя в форме.
func (c *Registration) SetUsername(v string) {
	c.update(func(s RegistrationState) RegistrationState { s.Username = v; return s })
}

// SetPassword меняет пароль в форме.
func (c *Registration) SetPassword(v string) {
	c.update(func(s RegistrationState) RegistrationState { s.Password = v; return s })
}

// Submit регистрирует пользователя.
func (c *Registration) Submit(ctx context.Context) {
	st := c.State()
	if err := required(field{"username", st.Username}, field{"password", st.Password}); err != nil {
		c.fail(registrationStatus, err)
		return
	}
	username, password := st.Username, st.Password
	c.run(ctx, "auth.register", registrationStatus,
		func(ctx context.Context) (func(RegistrationState) RegistrationState, error) {
			if err := c.auth.Register(ctx, username, password); err != nil {
				return nil, err
			}
			return func(s RegistrationState) RegistrationState {
				s.RegistrationOK = true
				c.sig.Fire()
				return s
			}, nil
		})
}

// ClearError очищает ошибку.
func (c *Registration) ClearError() { c.clear(registrationStatus) }

// LogoutState - результат выхода.
type LogoutState struct {
	LogoutOK bool
	viewstate.Status
}

func logoutStatus(s *LogoutState) *viewstate.Status { return &s.Status }

// Logout - контроллер выхода.
type Logout struct {
	base[LogoutState]
	completion
	auth     api.AuthAPI
	sessions Sessions
}

// NewLogout создает контроллер выхода.
func NewLogout(auth api.AuthAPI, sessions Sessions, opts ...Option) *Logout {
	return &Logout{
		base:     newBase(context.Background(), LogoutState{}, "logout", opts),
		auth:     auth,
		sessions: sessions,
	}
}

// Logout завершает сессию на сервере и очищает хранилище токенов.
// Без сохраненного токена ничего не делает и LogoutOK остается false.
func (c *Logout) Logout(ctx context.Context) {
	c.run(ctx, "auth.logout", logoutStatus,
		func(ctx context.Context) (func(LogoutState) LogoutState, error) {
			token, ok, err := c.sessions.LatestToken(ctx)
			if err != nil {
				return nil, sessionErr(err)
			}
			if !ok {
				c.log.Debug("Выход пропущен: нет сохраненной сессии")
				return nil, nil
			}
			if err = c.auth.Logout(ctx, token); err != nil {
				return nil, err
			}
			if err = c.sessions.ClearTokens(ctx); err != nil {
				return nil, sessionErr(err)
			}
			return func(s LogoutState) LogoutState {
				s.LogoutOK = true
				c.sig.Fire()
				return s
			}, nil
		})
}

// ClearError очищает ошибку.
func (c *Logout) ClearError() { c.clear(logoutStatus) }

// sessionErr помечает сбой хранилища как ошибку авторизации, если он еще не помечен.
func sessionErr(err error) error {
	if err == nil || apperr.IsAuth(err) {
		return err
	}
	return &apperr.AuthError{Op: "session", Err: err}
}
