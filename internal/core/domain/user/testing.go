package user

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
	c "userapi/internal/core/domain/common"
)

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

type FakeSessionTokenGenerator struct {
	Token string
}

func NewFakeSessionTokenGenerator(token string) *FakeSessionTokenGenerator {
	return &FakeSessionTokenGenerator{Token: token}
}

func (g *FakeSessionTokenGenerator) GenerateToken() SessionToken {
	return SessionToken(g.Token)
}

// FakeResetTokenGenerator returns tokens from the Tokens queue one by one
// and repeats the last one when the queue is exhausted.
type FakeResetTokenGenerator struct {
	Tokens []PasswordResetToken
	ix     int
	lock   sync.Mutex
}

func NewFakeResetTokenGenerator(tokens ...string) *FakeResetTokenGenerator {
	g := &FakeResetTokenGenerator{}
	for _, t := range tokens {
		g.Tokens = append(g.Tokens, PasswordResetToken(t))
	}
	return g
}

func (g *FakeResetTokenGenerator) GenerateResetToken() PasswordResetToken {
	g.lock.Lock()
	defer g.lock.Unlock()
	if len(g.Tokens) == 0 {
		panic("FakeResetTokenGenerator has no tokens")
	}
	token := g.Tokens[g.ix]
	if g.ix < len(g.Tokens)-1 {
		g.ix++
	}
	return token
}

type FakeUserRepository struct {
	Users       []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not create user %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, u := range r.Users {
		if u.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
		maxID = u.ID
	}
	u = User{
		ID:           maxID + 1,
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: input.PasswordHash,
		CreatedAt:    input.CreatedAt,
	}
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user %s", email)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) List(ctx context.Context, query ListUsersQuery) ([]User, error) {
	if r.ReturnError {
		return nil, fmt.Errorf("could not list users")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	matched := r.match(query)
	if query.Offset >= uint(len(matched)) {
		return []User{}, nil
	}
	matched = matched[query.Offset:]
	if query.Limit > 0 && query.Limit < uint(len(matched)) {
		matched = matched[:query.Limit]
	}
	return matched, nil
}

func (r *FakeUserRepository) Count(ctx context.Context, query ListUsersQuery) (uint, error) {
	if r.ReturnError {
		return 0, fmt.Errorf("could not count users")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	return uint(len(r.match(query))), nil
}

func (r *FakeUserRepository) match(query ListUsersQuery) []User {
	matched := make([]User, 0, len(r.Users))
	for _, u := range r.Users {
		if query.UsernameContains.IsPresent &&
			!strings.Contains(string(u.Username), query.UsernameContains.Value) {
			continue
		}
		matched = append(matched, u)
	}
	return matched
}

func (r *FakeUserRepository) Update(ctx context.Context, input UpdateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not update user %d", input.ID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == input.ID {
			if input.DoUsernameUpdate {
				r.Users[ix].Username = input.Username
			}
			return r.Users[ix], nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetPassword(ctx context.Context, id ID, password PasswordHash) error {
	if r.ReturnError {
		return fmt.Errorf("could not set password for user %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].PasswordHash = password
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetLastLoginAt(ctx context.Context, id ID, at time.Time) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].LastLoginAt = c.NewOptional(at, true)
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) Delete(ctx context.Context, id ID) error {
	if r.ReturnError {
		return fmt.Errorf("could not delete user %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users = append(r.Users[:ix], r.Users[ix+1:]...)
			return nil
		}
	}
	return ErrUserDoesNotExist
}

type FakeSessionRepository struct {
	UserIdByToken  map[SessionToken]ID
	UserRepository UserRepository
	ReturnError    bool
	lock           sync.Mutex
}

func NewFakeSessionRepository(userRepository UserRepository) *FakeSessionRepository {
	return &FakeSessionRepository{
		UserIdByToken:  make(map[SessionToken]ID),
		UserRepository: userRepository,
	}
}

func (r *FakeSessionRepository) Create(ctx context.Context, input CreateSessionInput) error {
	if r.ReturnError {
		return fmt.Errorf("could not create session %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.UserIdByToken[input.Token] = input.UserID
	return nil
}

func (r *FakeSessionRepository) GetUserByToken(ctx context.Context, token SessionToken) (u User, err error) {
	r.lock.Lock()
	userId, ok := r.UserIdByToken[token]
	r.lock.Unlock()
	if !ok {
		return u, ErrUserDoesNotExist
	}
	return r.UserRepository.GetByID(ctx, userId)
}

func (r *FakeSessionRepository) Delete(ctx context.Context, token SessionToken) (ID, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	userID, ok := r.UserIdByToken[token]
	if !ok {
		return ID(0), ErrSessionDoesNotExist
	}
	delete(r.UserIdByToken, token)
	return userID, nil
}

type FakeResetTokenRepository struct {
	Tokens      map[PasswordResetToken]ResetToken
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeResetTokenRepository() *FakeResetTokenRepository {
	return &FakeResetTokenRepository{Tokens: make(map[PasswordResetToken]ResetToken)}
}

func (r *FakeResetTokenRepository) Create(ctx context.Context, input CreateResetTokenInput) (t ResetToken, err error) {
	if r.ReturnError {
		return t, fmt.Errorf("could not create reset token for user %d", input.UserID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.Tokens[input.Token]; ok {
		return t, ErrResetTokenAlreadyExists
	}
	t = ResetToken{
		Token:     input.Token,
		UserID:    input.UserID,
		ExpiresAt: input.ExpiresAt,
		CreatedAt: input.CreatedAt,
	}
	r.Tokens[input.Token] = t
	return t, nil
}

func (r *FakeResetTokenRepository) GetByToken(ctx context.Context, token PasswordResetToken) (t ResetToken, err error) {
	if r.ReturnError {
		return t, fmt.Errorf("could not get reset token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	t, ok := r.Tokens[token]
	if !ok {
		return t, ErrResetTokenDoesNotExist
	}
	return t, nil
}

func (r *FakeResetTokenRepository) DeleteByToken(ctx context.Context, token PasswordResetToken) (t ResetToken, err error) {
	if r.ReturnError {
		return t, fmt.Errorf("could not delete reset token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	t, ok := r.Tokens[token]
	if !ok {
		return t, ErrResetTokenDoesNotExist
	}
	delete(r.Tokens, token)
	return t, nil
}

func (r *FakeResetTokenRepository) TokenCount() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.Tokens)
}

type FakePasswordResetTokenSender struct {
	Sent        []ResetToken
	SentTo      []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePasswordResetTokenSender() *FakePasswordResetTokenSender {
	return &FakePasswordResetTokenSender{}
}

func (s *FakePasswordResetTokenSender) SendResetToken(ctx context.Context, user User, token ResetToken) error {
	if s.ReturnError {
		return fmt.Errorf("could not send password reset token")
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, token)
	s.SentTo = append(s.SentTo, user)
	return nil
}

func (s *FakePasswordResetTokenSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}
