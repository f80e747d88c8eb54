package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pixelclub/pixels-backend/internal/model"
	"github.com/pixelclub/pixels-backend/internal/repository"
)

type fakeVerifier struct {
	uid, email, name string
	err              error
}

func (f *fakeVerifier) Verify(context.Context, string) (string, string, string, error) {
	return f.uid, f.email, f.name, f.err
}

type upsertMemberRepo struct {
	repository.MemberRepository
	upserted *model.Member
}

func (r *upsertMemberRepo) UpsertProfile(_ context.Context, uid, firstName, lastName, email string) (*model.Member, error) {
	r.upserted = &model.Member{UID: uid, FirstName: firstName, LastName: lastName, Email: email, PixelDelta: 2}
	return r.upserted, nil
}

func TestLoginIssuesParsableSession(t *testing.T) {
	repo := &upsertMemberRepo{}
	verifier := &fakeVerifier{uid: "u1", email: "ana@club.org", name: "Ana Maria Silva"}
	svc := NewAuthService(verifier, repo, "test-secret", time.Hour, "club.org")

	member, token, err := svc.Login(context.Background(), "provider-token")
	if err != nil {
		t.Fatal(err)
	}
	if member.FirstName != "Ana" || member.LastName != "Maria Silva" {
		t.Fatalf("name split: %q %q", member.FirstName, member.LastName)
	}

	claims, err := svc.ParseSession(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Subject != "u1" {
		t.Fatalf("subject=%q", claims.Subject)
	}
	if claims.PixelDelta != 2 {
		t.Fatalf("pixelDelta=%d", claims.PixelDelta)
	}
}

func TestLoginRejectsWrongDomain(t *testing.T) {
	repo := &upsertMemberRepo{}
	verifier := &fakeVerifier{uid: "u1", email: "ana@elsewhere.com", name: "Ana"}
	svc := NewAuthService(verifier, repo, "test-secret", time.Hour, "club.org")

	if _, _, err := svc.Login(context.Background(), "tok"); !errors.Is(err, ErrUpstreamAuth) {
		t.Fatalf("err=%v want=ErrUpstreamAuth", err)
	}
	if repo.upserted != nil {
		t.Fatal("no member must be written on auth failure")
	}
}

func TestLoginRejectsProviderFailure(t *testing.T) {
	repo := &upsertMemberRepo{}
	verifier := &fakeVerifier{err: errors.New("bad token")}
	svc := NewAuthService(verifier, repo, "test-secret", time.Hour, "")

	if _, _, err := svc.Login(context.Background(), "tok"); !errors.Is(err, ErrUpstreamAuth) {
		t.Fatalf("err=%v want=ErrUpstreamAuth", err)
	}
}

func TestParseSessionRejectsTampering(t *testing.T) {
	repo := &upsertMemberRepo{}
	verifier := &fakeVerifier{uid: "u1", email: "a@b.c", name: "A"}
	svc := NewAuthService(verifier, repo, "secret-one", time.Hour, "")
	other := NewAuthService(verifier, repo, "secret-two", time.Hour, "")

	_, token, err := svc.Login(context.Background(), "tok")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := other.ParseSession(token); !errors.Is(err, ErrUpstreamAuth) {
		t.Fatalf("err=%v want=ErrUpstreamAuth", err)
	}
}
