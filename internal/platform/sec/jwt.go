// Copyright (c) 2026 Trackline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces.
package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the payload embedded inside a Trackline access token.
//
// # Shape
//
// The wire shape is fixed by the API contract and read by two very different
// consumers: the API server (after full signature verification) and the
// dashboard session store (as a fast, untrusted local hint via
// [DecodeUnverified]). Subject carries the employee ID, Email and IsAdmin
// mirror the employee record at issue time, and ExpiresAt is always checked
// against current time before the claims are trusted.
type Claims struct {
	jwt.RegisteredClaims

	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// TokenService handles generation and verification of JWT tokens using HS256.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a new TokenService with a shared signing secret.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("sec: JWT secret must not be empty")
	}

	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
	}, nil
}

// GenerateAccessToken creates a new signed access token for an employee.
func (service *TokenService) GenerateAccessToken(employeeID, email string, isAdmin bool, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   employeeID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		Email:   email,
		IsAdmin: isAdmin,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a JWT string.
//
// # Returns
//   - The embedded [*Claims] when the signature matches and the token is unexpired.
//   - An error for any forged, malformed, or expired token.
func (service *TokenService) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	return claims, nil
}

// DecodeUnverified extracts the claims of a token WITHOUT checking its signature.
//
// # Security
//
// This exists for exactly one caller: the dashboard session store, which uses
// the decoded expiry as a local fast path to skip a doomed profile fetch.
// The result must never be used for an authorization decision — the API
// re-verifies the signature on every protected call.
func DecodeUnverified(tokenString string) (*Claims, error) {
	parser := jwt.NewParser()

	claims := &Claims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("sec: malformed token: %w", err)
	}

	return claims, nil
}
