// internal/core/usecases/mocks_test.go
package usecases

import (
	"context"
	"errors"
	"fmt"

	"ssdeepx/internal/core/domain"
	"ssdeepx/internal/core/ports"
)

// mockRunner is a ports.Runner returning canned invocations per path.
type mockRunner struct {
	invocations map[string]ports.Invocation
	invokeErr   error
	calls       []string
}

func newMockRunner() *mockRunner {
	return &mockRunner{
		invocations: map[string]ports.Invocation{},
	}
}

func (m *mockRunner) set(path string, inv ports.Invocation) {
	m.invocations[path] = inv
}

func (m *mockRunner) Invoke(ctx context.Context, path string) (ports.Invocation, error) {
	m.calls = append(m.calls, path)
	if m.invokeErr != nil {
		return ports.Invocation{}, m.invokeErr
	}
	if inv, ok := m.invocations[path]; ok {
		return inv, nil
	}
	return ports.Invocation{ExitCode: 0, Stdout: fmt.Sprintf(`DEFAULT,"%s"`, path)}, nil
}

func (m *mockRunner) Command() string {
	return "ssdeep -s -b"
}

func (m *mockRunner) Close() error {
	return nil
}

// mockStore is an in-memory ports.ArtifactStore recording written lines.
type mockStore struct {
	createErr error
	writeErr  error
	created   []*domain.OutputArtifact
	contents  map[string]string // uuid -> written content
	seq       int
}

func newMockStore() *mockStore {
	return &mockStore{
		contents: map[string]string{},
	}
}

func (m *mockStore) Create(displayName, extension, dataType string) (*domain.OutputArtifact, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.seq++
	artifact := &domain.OutputArtifact{
		UUID:        fmt.Sprintf("uuid-%d", m.seq),
		Path:        fmt.Sprintf("/tmp/out/uuid-%d.%s", m.seq, extension),
		DisplayName: displayName,
		Extension:   extension,
		DataType:    dataType,
	}
	m.created = append(m.created, artifact)
	return artifact, nil
}

func (m *mockStore) Write(artifact *domain.OutputArtifact, line string) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.contents[artifact.UUID] = line + "\n"
	return nil
}

var errStoreBroken = errors.New("store broken")
