// Copyright (c) 2026 Trackline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"net/http"

	"github.com/taibuivan/trackline/internal/platform/constants"
)

// CookieStorage persists the bearer token in the browser under the single
// well-known cookie [constants.SessionCookieName].
//
// Reads come from the inbound request; writes go to the outbound response,
// so a Write or Clear takes effect on the browser's next request.
type CookieStorage struct {
	request *http.Request
	writer  http.ResponseWriter
	secure  bool
}

// NewCookieStorage binds a storage to one request/response pair.
func NewCookieStorage(writer http.ResponseWriter, request *http.Request, secure bool) *CookieStorage {
	return &CookieStorage{
		request: request,
		writer:  writer,
		secure:  secure,
	}
}

func (storage *CookieStorage) Read() (string, bool) {
	cookie, err := storage.request.Cookie(constants.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func (storage *CookieStorage) Write(token string) {
	http.SetCookie(storage.writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   storage.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(constants.AccessTokenTTL.Seconds()),
	})
}

func (storage *CookieStorage) Clear() {
	http.SetCookie(storage.writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   storage.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// MemoryStorage is an in-process [TokenStorage] used by tests and tools.
type MemoryStorage struct {
	token string
	has   bool
}

func (storage *MemoryStorage) Read() (string, bool) { return storage.token, storage.has }

func (storage *MemoryStorage) Write(token string) {
	storage.token = token
	storage.has = true
}

func (storage *MemoryStorage) Clear() {
	storage.token = ""
	storage.has = false
}
