package websocket

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deshmukhatharva11/innovation-hub-sub002/internal/utils"
	"github.com/deshmukhatharva11/innovation-hub-sub002/internal/utils/types"
)

type authFixture struct {
	key  *rsa.PrivateKey
	rdb  *redis.Client
	auth AuthenticatorFunc
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return &authFixture{
		key:  key,
		rdb:  rdb,
		auth: JWTAuthenticator(&key.PublicKey, rdb),
	}
}

func (f *authFixture) token(t *testing.T, sub, role string) string {
	t.Helper()
	now := time.Now().Unix()
	token, err := utils.GenerateSign(&utils.Claims{
		Sub:  sub,
		Role: role,
		Iat:  now,
		Exp:  now + 3600,
	}, f.key)
	require.NoError(t, err)
	return token
}

func (f *authFixture) writeSession(t *testing.T, sub, status string) {
	t.Helper()
	session := types.Session{UserID: sub, Status: status, IssueAt: time.Now().Unix()}
	err := utils.SetCacheData(t.Context(), f.rdb, "session:"+sub, &session, time.Hour)
	require.NoError(t, err)
}

func TestJWTAuthenticator_ValidToken(t *testing.T) {
	f := newAuthFixture(t)
	f.writeSession(t, "u1", types.SessionValid)

	r := httptest.NewRequest("GET", "/ws", nil)
	r.Header.Set("Authorization", "Bearer "+f.token(t, "u1", "student"))

	res, err := f.auth(r)
	require.NoError(t, err)
	assert.Equal(t, "u1", res.UserID)
	assert.Equal(t, "student", res.Role)
}

func TestJWTAuthenticator_MissingToken(t *testing.T) {
	f := newAuthFixture(t)

	r := httptest.NewRequest("GET", "/ws", nil)
	res, err := f.auth(r)

	assert.Error(t, err)
	assert.Nil(t, res, "no client is ever created on a failed handshake")
}

func TestJWTAuthenticator_GarbageToken(t *testing.T) {
	f := newAuthFixture(t)
	f.writeSession(t, "u1", types.SessionValid)

	r := httptest.NewRequest("GET", "/ws?token=not-a-jwt", nil)
	res, err := f.auth(r)

	assert.Error(t, err)
	assert.Nil(t, res)
}

func TestJWTAuthenticator_ExpiredToken(t *testing.T) {
	f := newAuthFixture(t)
	f.writeSession(t, "u1", types.SessionValid)

	now := time.Now().Unix()
	token, err := utils.GenerateSign(&utils.Claims{
		Sub: "u1", Role: "student", Iat: now - 7200, Exp: now - 3600,
	}, f.key)
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/ws", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	_, err = f.auth(r)
	assert.Error(t, err)
}

func TestJWTAuthenticator_RevokedSession(t *testing.T) {
	f := newAuthFixture(t)
	f.writeSession(t, "u1", types.SessionRevoked)

	r := httptest.NewRequest("GET", "/ws", nil)
	r.Header.Set("Authorization", "Bearer "+f.token(t, "u1", "student"))

	_, err := f.auth(r)
	assert.Error(t, err, "a revoked session must reject even an unexpired token")
}

func TestJWTAuthenticator_NoSession(t *testing.T) {
	// identity no longer exists server-side
	f := newAuthFixture(t)

	r := httptest.NewRequest("GET", "/ws", nil)
	r.Header.Set("Authorization", "Bearer "+f.token(t, "ghost", "student"))

	_, err := f.auth(r)
	assert.Error(t, err)
}

func TestTokenFromRequest_Precedence(t *testing.T) {
	// explicit auth header wins over Authorization, which wins over query
	r := httptest.NewRequest("GET", "/ws?token=from-query", nil)
	r.Header.Set("X-Auth-Token", "from-auth-field")
	r.Header.Set("Authorization", "Bearer from-header")
	assert.Equal(t, "from-auth-field", tokenFromRequest(r))

	r = httptest.NewRequest("GET", "/ws?token=from-query", nil)
	r.Header.Set("Authorization", "Bearer from-header")
	assert.Equal(t, "from-header", tokenFromRequest(r))

	r = httptest.NewRequest("GET", "/ws?token=from-query", nil)
	assert.Equal(t, "from-query", tokenFromRequest(r))

	r = httptest.NewRequest("GET", "/ws", nil)
	assert.Equal(t, "", tokenFromRequest(r))
}
