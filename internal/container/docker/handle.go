// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package docker

import (
	"archive/tar"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/pkg/stdcopy"

	lpcicontainer "github.com/gizzahub/lpci-go/internal/container"
)

// Handle is the docker-backed container.Handle: a running container's
// ID and name, plus the release callback that cleans its staged project
// tree and stops it.
type Handle struct {
	provider  *Provider
	id        string
	name      string
	onRelease func(ctx context.Context) error
}

func (h *Handle) Name() string { return h.name }

// RunCapture execs argv inside the container and returns its stdout as
// raw bytes, matching artifact.Instance's expectations around opaque
// byte streams (e.g. NUL-delimited find/readlink output). On a non-zero
// exit, stderr is carried in the returned CommandError.
func (h *Handle) RunCapture(ctx context.Context, argv []string) ([]byte, error) {
	cli := h.provider.cli
	execID, err := cli.ContainerExecCreate(ctx, h.id, container.ExecOptions{
		Cmd:          argv,
		AttachStdout: true,
		AttachStderr: true,
	})
	if err != nil {
		return nil, fmt.Errorf("exec create %v: %w", argv, err)
	}
	resp, err := cli.ContainerExecAttach(ctx, execID.ID, container.ExecStartOptions{})
	if err != nil {
		return nil, fmt.Errorf("exec attach %v: %w", argv, err)
	}
	defer resp.Close()

	var stdout, stderr bytes.Buffer
	if _, err := stdcopy.StdCopy(&stdout, &stderr, resp.Reader); err != nil {
		return nil, fmt.Errorf("exec read output %v: %w", argv, err)
	}

	inspect, err := cli.ContainerExecInspect(ctx, execID.ID)
	if err != nil {
		return nil, fmt.Errorf("exec inspect %v: %w", argv, err)
	}
	if inspect.ExitCode != 0 {
		return stdout.Bytes(), &lpcicontainer.CommandError{Argv: argv, ExitCode: inspect.ExitCode, Stderr: stderr.String()}
	}
	return stdout.Bytes(), nil
}

// PushFile copies a single host file into the container at
// containerPath, creating intermediate directories first, per spec.md
// §4.4's "parent directories... created explicitly with mkdir -p before
// push" push/pull contract.
func (h *Handle) PushFile(ctx context.Context, hostPath, containerPath string) error {
	if _, err := h.RunCapture(ctx, []string{"mkdir", "-p", path.Dir(containerPath)}); err != nil {
		return err
	}
	data, err := readHostFile(hostPath)
	if err != nil {
		return err
	}
	archive, err := singleFileTar(path.Base(containerPath), data)
	if err != nil {
		return err
	}
	return h.provider.cli.CopyToContainer(ctx, h.id, path.Dir(containerPath), archive, container.CopyToContainerOptions{})
}

// PullFile copies a single file out of the container onto the host at
// hostPath, creating intermediate host directories first.
func (h *Handle) PullFile(ctx context.Context, containerPath, hostPath string) error {
	reader, _, err := h.provider.cli.CopyFromContainer(ctx, h.id, containerPath)
	if err != nil {
		return fmt.Errorf("copy %s from container: %w", containerPath, err)
	}
	defer reader.Close()

	tr := tar.NewReader(reader)
	hdr, err := tr.Next()
	if err != nil {
		return fmt.Errorf("read archive for %s: %w", containerPath, err)
	}
	_ = hdr
	return writeHostFile(hostPath, tr)
}

// Release implements spec.md §4.4's scoped-resource contract: on scope
// exit, remove the staged project tree and stop the instance (this
// backend mounts nothing, so there is nothing to unmount), regardless
// of whether the scope exited via success, error, or panic. The instance itself is deleted only when deleteInstance is
// set (the --clean contract); otherwise it is left stopped for reuse.
func (h *Handle) Release(ctx context.Context, deleteInstance bool) error {
	if h.onRelease != nil {
		if err := h.onRelease(ctx); err != nil {
			return err
		}
	}
	if deleteInstance {
		return h.provider.cli.ContainerRemove(ctx, h.id, container.RemoveOptions{Force: true})
	}
	return nil
}

func singleFileTar(name string, data []byte) (io.Reader, error) {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	hdr := &tar.Header{Name: name, Mode: 0o644, Size: int64(len(data))}
	if err := tw.WriteHeader(hdr); err != nil {
		return nil, err
	}
	if _, err := tw.Write(data); err != nil {
		return nil, err
	}
	if err := tw.Close(); err != nil {
		return nil, err
	}
	return &buf, nil
}

func readHostFile(hostPath string) ([]byte, error) {
	return os.ReadFile(hostPath)
}

func writeHostFile(hostPath string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(hostPath), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(hostPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(f, r)
	return err
}
