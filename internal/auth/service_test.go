package auth_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/pradiptamal/crm-management/internal/auth"
)

type mockUserRepo struct {
	passwordHash string
	userID       string
	lookupErr    error

	users map[int64]*auth.User
}

func (m *mockUserRepo) GetPasswordForUsername(email string) (string, string, error) {
	if m.lookupErr != nil {
		return "", "", m.lookupErr
	}
	return m.passwordHash, m.userID, nil
}

func (m *mockUserRepo) GetUserByID(userID int64) (*auth.User, error) {
	u, ok := m.users[userID]
	if !ok {
		return nil, auth.ErrInvalidCredentials
	}
	return u, nil
}

var _ = Describe("Auth Service", func() {
	var (
		repo    *mockUserRepo
		service *auth.Service
	)

	const password = "correct-horse-battery"

	BeforeEach(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		Expect(err).NotTo(HaveOccurred())

		repo = &mockUserRepo{
			passwordHash: string(hash),
			userID:       "10",
			users: map[int64]*auth.User{
				10: {ID: 10, Email: "owner@demo.example", Name: "Demo Owner", IsActive: true},
				11: {ID: 11, Email: "gone@demo.example", Name: "Disabled", IsActive: false},
			},
		}

		tokenGen := auth.NewJWTTokenGenerator(
			"test-access-secret-test-access-secret",
			"test-refresh-secret-test-refresh-secret",
			15*time.Minute,
			24*time.Hour,
		)
		service = auth.NewService(repo, tokenGen, bcrypt.MinCost)
	})

	Describe("Authenticate", func() {
		It("returns token pair for valid credentials", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{Email: "owner@demo.example", Password: password})
			Expect(err).NotTo(HaveOccurred())
			Expect(tokens.AccessToken).NotTo(BeEmpty())
			Expect(tokens.RefreshToken).NotTo(BeEmpty())
		})

		It("rejects a wrong password", func() {
			_, err := service.Authenticate(auth.LoginDTO{Email: "owner@demo.example", Password: "nope"})
			Expect(err).To(MatchError(auth.ErrInvalidCredentials))
		})

		It("rejects an unknown user without leaking the reason", func() {
			repo.lookupErr = auth.ErrInvalidCredentials
			_, err := service.Authenticate(auth.LoginDTO{Email: "who@demo.example", Password: password})
			Expect(err).To(MatchError(auth.ErrInvalidCredentials))
		})

		It("rejects missing fields before touching the repository", func() {
			_, err := service.Authenticate(auth.LoginDTO{Email: "", Password: ""})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Access tokens", func() {
		It("validates a freshly issued access token", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{Email: "owner@demo.example", Password: password})
			Expect(err).NotTo(HaveOccurred())

			claims, err := service.ValidateAccessToken(tokens.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal("10"))
			Expect(claims.Email).To(Equal("owner@demo.example"))
		})

		It("rejects garbage tokens", func() {
			_, err := service.ValidateAccessToken("not-a-token")
			Expect(err).To(MatchError(auth.ErrInvalidToken))
		})
	})

	Describe("RefreshTokens", func() {
		It("issues a new token pair from a valid refresh token", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{Email: "owner@demo.example", Password: password})
			Expect(err).NotTo(HaveOccurred())

			renewed, err := service.RefreshTokens(tokens.RefreshToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(renewed.AccessToken).NotTo(BeEmpty())
			Expect(renewed.RefreshToken).NotTo(BeEmpty())
		})
	})

	Describe("GetUser", func() {
		It("returns an active user", func() {
			u, err := service.GetUser(10)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Email).To(Equal("owner@demo.example"))
		})

		It("rejects a deactivated account even with a valid token", func() {
			_, err := service.GetUser(11)
			Expect(err).To(MatchError(auth.ErrUserInactive))
		})
	})
})
