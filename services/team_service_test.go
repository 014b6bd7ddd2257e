package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/copapymes/league-system/storage"
)

type fakeUploader struct {
	mu      sync.Mutex
	objects map[string]string
	deleted []string
	failPut bool
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{objects: make(map[string]string)}
}

func (u *fakeUploader) Upload(ctx context.Context, key, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.failPut {
		return nil, errors.New("bucket unavailable")
	}
	u.objects[key] = contentType
	return &storage.UploadResult{Key: key, Location: "https://media.test/" + key}, nil
}

func (u *fakeUploader) Delete(ctx context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.objects, key)
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://media.test/" + key
}

func (u *fakeUploader) stored() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	keys := make([]string, 0, len(u.objects))
	for k := range u.objects {
		keys = append(keys, k)
	}
	return keys
}

func TestCreateTeam(t *testing.T) {
	svc := NewTeamService(newFakeTeamRepo(), nil, testLogger())

	team, err := svc.Create(context.Background(), CreateTeamInput{Name: "Club Atletico Norte"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !team.Active {
		t.Fatal("new team should be active")
	}
	if team.ShortName != "CAN" {
		t.Fatalf("derived short name = %q, want CAN", team.ShortName)
	}

	if _, err := svc.Create(context.Background(), CreateTeamInput{Name: ""}); !errors.Is(err, ErrTeamNameRequired) {
		t.Fatalf("empty name: got %v, want ErrTeamNameRequired", err)
	}
	if _, err := svc.Create(context.Background(), CreateTeamInput{Name: "Club Atletico Norte"}); !errors.Is(err, ErrTeamNameConflict) {
		t.Fatalf("duplicate name: got %v, want ErrTeamNameConflict", err)
	}
}

func TestSetTeamActive(t *testing.T) {
	repo := newFakeTeamRepo()
	svc := NewTeamService(repo, nil, testLogger())
	team, err := svc.Create(context.Background(), CreateTeamInput{Name: "Alpha", ShortName: "ALP"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	deactivated, err := svc.SetActive(context.Background(), team.ID, false)
	if err != nil {
		t.Fatalf("SetActive returned error: %v", err)
	}
	if deactivated.Active {
		t.Fatal("team still active after deactivation")
	}

	if _, err := svc.SetActive(context.Background(), 404, false); !errors.Is(err, ErrTeamNotFound) {
		t.Fatalf("unknown team: got %v, want ErrTeamNotFound", err)
	}
}

func TestUploadCrest(t *testing.T) {
	repo := newFakeTeamRepo()
	uploader := newFakeUploader()
	svc := NewTeamService(repo, uploader, testLogger())

	team, err := svc.Create(context.Background(), CreateTeamInput{Name: "Alpha", ShortName: "ALP"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	updated, err := svc.UploadCrest(context.Background(), team.ID, "image/png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("UploadCrest returned error: %v", err)
	}
	if updated.CrestKey == nil || !strings.HasPrefix(*updated.CrestKey, "crests/team-") {
		t.Fatalf("crest key = %v", updated.CrestKey)
	}
	if !strings.HasSuffix(*updated.CrestKey, ".png") {
		t.Fatalf("crest key %q should carry the .png extension", *updated.CrestKey)
	}
	if updated.CrestURL == nil {
		t.Fatal("crest URL not resolved")
	}
	firstKey := *updated.CrestKey

	// Replacing the crest removes the previous object.
	updated, err = svc.UploadCrest(context.Background(), team.ID, "image/webp", strings.NewReader("webp-bytes"))
	if err != nil {
		t.Fatalf("second UploadCrest returned error: %v", err)
	}
	if *updated.CrestKey == firstKey {
		t.Fatal("crest key unchanged after replacement")
	}
	if got := uploader.stored(); len(got) != 1 {
		t.Fatalf("bucket holds %d objects, want 1: %v", len(got), got)
	}
}

func TestUploadCrestUnsupportedType(t *testing.T) {
	repo := newFakeTeamRepo()
	svc := NewTeamService(repo, newFakeUploader(), testLogger())
	team, err := svc.Create(context.Background(), CreateTeamInput{Name: "Alpha", ShortName: "ALP"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, err := svc.UploadCrest(context.Background(), team.ID, "image/gif", strings.NewReader("gif")); !errors.Is(err, ErrUnsupportedMediaType) {
		t.Fatalf("got %v, want ErrUnsupportedMediaType", err)
	}
}

func TestUploadCrestStorageDisabled(t *testing.T) {
	repo := newFakeTeamRepo()
	svc := NewTeamService(repo, nil, testLogger())
	team, err := svc.Create(context.Background(), CreateTeamInput{Name: "Alpha", ShortName: "ALP"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, err := svc.UploadCrest(context.Background(), team.ID, "image/png", strings.NewReader("png")); !errors.Is(err, ErrMediaStorageDisabled) {
		t.Fatalf("got %v, want ErrMediaStorageDisabled", err)
	}
}
