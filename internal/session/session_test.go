package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func testContext(t *testing.T, cookie *http.Cookie) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		c.Request.AddCookie(cookie)
	}
	return c, recorder
}

func sessionCookie(t *testing.T, recorder *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == CookieName {
			return cookie
		}
	}
	t.Fatalf("no session cookie set")
	return nil
}

func TestManagerLoginLogout(t *testing.T) {
	manager := NewManager(NewMemoryStore(time.Hour), time.Hour)

	c, recorder := testContext(t, nil)
	if sess := manager.Current(c); sess != nil {
		t.Fatalf("expected anonymous state, got %+v", sess)
	}
	if err := manager.LogIn(c, 42, true); err != nil {
		t.Fatalf("log in: %v", err)
	}
	cookie := sessionCookie(t, recorder)

	c, _ = testContext(t, cookie)
	sess := manager.Current(c)
	if sess == nil || sess.UserID != 42 || !sess.Admin {
		t.Fatalf("expected authenticated session, got %+v", sess)
	}

	manager.LogOut(c)
	c, _ = testContext(t, cookie)
	if sess := manager.Current(c); sess != nil {
		t.Errorf("expected anonymous state after logout, got %+v", sess)
	}
}

func TestManagerFlashesAreOneShot(t *testing.T) {
	manager := NewManager(NewMemoryStore(time.Hour), time.Hour)

	c, recorder := testContext(t, nil)
	if err := manager.LogIn(c, 1, false); err != nil {
		t.Fatalf("log in: %v", err)
	}
	cookie := sessionCookie(t, recorder)

	c, _ = testContext(t, cookie)
	manager.Flash(c, "mensaje", "Equipo creado correctamente")

	c, _ = testContext(t, cookie)
	flashes := manager.PopFlashes(c)
	if flashes["mensaje"] != "Equipo creado correctamente" {
		t.Fatalf("expected flash message, got %+v", flashes)
	}

	c, _ = testContext(t, cookie)
	if flashes := manager.PopFlashes(c); len(flashes) != 0 {
		t.Errorf("flashes must be consumed once, got %+v", flashes)
	}
}
