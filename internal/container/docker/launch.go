// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package docker

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	dockercontainer "github.com/docker/docker/api/types/container"
	dockerimage "github.com/docker/docker/api/types/image"

	lpcicontainer "github.com/gizzahub/lpci-go/internal/container"
)

// LaunchedEnvironment implements spec.md §4.4's launch sequence. Where
// the LXD reference implementation stages the project with a bind mount
// followed by "cp -a" and an unmount, this backend copies the project
// tree directly into the instance with a single tar upload: Docker has
// no live bind/unmount primitive for a running container, and a
// one-shot archive copy is the idiomatic Docker SDK equivalent of
// "stage a snapshot of the host tree into the instance."
func (p *Provider) LaunchedEnvironment(ctx context.Context, projectName, projectPath, series, arch string, gpuNvidia bool) (lpcicontainer.Handle, error) {
	image, err := lpcicontainer.BaseImage(series)
	if err != nil {
		return nil, err
	}
	name, err := lpcicontainer.InstanceName(projectName, projectPath, series, arch)
	if err != nil {
		return nil, err
	}

	if err := p.ensureImage(ctx, image); err != nil {
		return nil, err
	}

	hostConfig := &dockercontainer.HostConfig{}
	if gpuNvidia {
		hostConfig.DeviceRequests = []dockercontainer.DeviceRequest{{
			Driver:       "nvidia",
			Count:        -1,
			Capabilities: [][]string{{"gpu"}},
		}}
	}

	cfg := &dockercontainer.Config{
		Image: image,
		Labels: map[string]string{
			projectLabel: projectName,
			compatLabel:  lpcicontainer.BackendCompatTag,
		},
		Cmd:        []string{"sleep", "infinity"},
		WorkingDir: stagedProjectDir,
	}

	created, err := p.cli.ContainerCreate(ctx, cfg, hostConfig, nil, nil, name)
	if err != nil {
		return nil, fmt.Errorf("create instance %s: %w", name, err)
	}
	if err := p.cli.ContainerStart(ctx, created.ID, dockercontainer.StartOptions{}); err != nil {
		return nil, fmt.Errorf("start instance %s: %w", name, err)
	}

	handle := &Handle{provider: p, id: created.ID, name: name}

	if err := handle.stageProject(ctx, projectPath); err != nil {
		_ = p.cli.ContainerRemove(ctx, created.ID, dockercontainer.RemoveOptions{Force: true})
		return nil, fmt.Errorf("stage project into %s: %w", name, err)
	}

	handle.onRelease = func(ctx context.Context) error {
		if _, err := handle.RunCapture(ctx, []string{"rm", "-rf", stagedProjectDir}); err != nil {
			return fmt.Errorf("clean staged project in %s: %w", name, err)
		}
		if err := p.cli.ContainerStop(ctx, created.ID, dockercontainer.StopOptions{}); err != nil {
			return fmt.Errorf("stop instance %s: %w", name, err)
		}
		return nil
	}
	return handle, nil
}

func (p *Provider) ensureImage(ctx context.Context, ref string) error {
	_, _, err := p.cli.ImageInspectWithRaw(ctx, ref)
	if err == nil {
		return nil
	}
	reader, err := p.cli.ImagePull(ctx, ref, dockerimage.PullOptions{})
	if err != nil {
		return fmt.Errorf("pull image %s: %w", ref, err)
	}
	defer reader.Close()
	_, err = io.Copy(io.Discard, reader)
	return err
}

// stageProject uploads the project directory as a single tar archive,
// mirroring the post-cp state of the reference implementation's
// bind-mount-then-copy sequence.
func (h *Handle) stageProject(ctx context.Context, projectPath string) error {
	if _, err := h.RunCapture(ctx, []string{"mkdir", "-p", stagedProjectDir}); err != nil {
		return err
	}
	archive, err := tarDirectory(projectPath)
	if err != nil {
		return err
	}
	return h.provider.cli.CopyToContainer(ctx, h.id, stagedProjectDir, archive, dockercontainer.CopyToContainerOptions{})
}

func tarDirectory(root string) (io.Reader, error) {
	r, w := io.Pipe()
	go func() {
		tw := tar.NewWriter(w)
		err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(root, p)
			if err != nil || rel == "." {
				return err
			}
			info, err := d.Info()
			if err != nil {
				return err
			}
			hdr, err := tar.FileInfoHeader(info, "")
			if err != nil {
				return err
			}
			hdr.Name = filepath.ToSlash(rel)
			if err := tw.WriteHeader(hdr); err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			f, err := os.Open(p)
			if err != nil {
				return err
			}
			defer f.Close()
			_, err = io.Copy(tw, f)
			return err
		})
		if err == nil {
			err = tw.Close()
		}
		_ = w.CloseWithError(err)
	}()
	return r, nil
}
