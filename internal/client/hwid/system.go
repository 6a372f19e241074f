package hwid

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/dmitrijs2005/hwidgate/internal/client/repositories/metadata"
	"github.com/google/uuid"
)

var ErrNoMachineID = errors.New("no machine id found")

// SystemProvider reads the identity of the host:
//   - UniqueID: a random id generated on first use and kept in the local
//     metadata store, so it is stable for the installation;
//   - DeviceID: the OS machine id;
//   - SystemName: runtime.GOOS;
//   - SystemVersion: the OS release, "unknown" when it cannot be read.
type SystemProvider struct {
	repo metadata.Repository

	machineID func(ctx context.Context) (string, error)
	osVersion func(ctx context.Context) string
	goos      string
}

func NewSystemProvider(repo metadata.Repository) *SystemProvider {
	return &SystemProvider{
		repo:      repo,
		machineID: readMachineID,
		osVersion: readOSVersion,
		goos:      runtime.GOOS,
	}
}

func (p *SystemProvider) Identity(ctx context.Context) (Identity, error) {
	installID, err := p.repo.SetIfAbsent(ctx, metadata.KeyInstallID, []byte(uuid.NewString()))
	if err != nil {
		return Identity{}, fmt.Errorf("install id: %w", err)
	}

	deviceID, err := p.machineID(ctx)
	if err != nil {
		return Identity{}, fmt.Errorf("machine id: %w", err)
	}

	return Identity{
		UniqueID:      string(installID),
		DeviceID:      deviceID,
		SystemName:    p.goos,
		SystemVersion: p.osVersion(ctx),
	}, nil
}

func readMachineID(ctx context.Context) (string, error) {
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd":
		for _, path := range []string{"/etc/machine-id", "/var/lib/dbus/machine-id", "/etc/hostid"} {
			if b, err := os.ReadFile(path); err == nil {
				if id := strings.TrimSpace(string(b)); id != "" {
					return id, nil
				}
			}
		}
		return "", ErrNoMachineID
	case "darwin":
		out, err := exec.CommandContext(ctx, "ioreg", "-rd1", "-c", "IOPlatformExpertDevice").Output()
		if err != nil {
			return "", err
		}
		for _, line := range strings.Split(string(out), "\n") {
			if strings.Contains(line, "IOPlatformUUID") {
				parts := strings.Split(line, "\"")
				if len(parts) >= 4 {
					return parts[3], nil
				}
			}
		}
		return "", ErrNoMachineID
	case "windows":
		out, err := exec.CommandContext(ctx, "wmic", "csproduct", "get", "UUID").Output()
		if err != nil {
			return "", err
		}
		if id := firstValueLine(out, "UUID"); id != "" {
			return id, nil
		}
		return "", ErrNoMachineID
	default:
		return "", fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

func readOSVersion(ctx context.Context) string {
	switch runtime.GOOS {
	case "linux":
		f, err := os.Open("/etc/os-release")
		if err != nil {
			return "unknown"
		}
		defer f.Close()
		if v := osReleaseVersion(f); v != "" {
			return v
		}
	case "darwin":
		if out, err := exec.CommandContext(ctx, "sw_vers", "-productVersion").Output(); err == nil {
			return strings.TrimSpace(string(out))
		}
	case "windows":
		if out, err := exec.CommandContext(ctx, "cmd", "/c", "ver").Output(); err == nil {
			return strings.TrimSpace(string(out))
		}
	}
	return "unknown"
}

// osReleaseVersion extracts VERSION_ID from an os-release file.
func osReleaseVersion(r io.Reader) string {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(sc.Text()), "=")
		if ok && key == "VERSION_ID" {
			return strings.Trim(value, `"'`)
		}
	}
	return ""
}

// firstValueLine returns the first non-empty line of wmic output that is not
// the column header.
func firstValueLine(out []byte, header string) string {
	for _, line := range bytes.Split(out, []byte("\n")) {
		s := strings.TrimSpace(string(line))
		if s != "" && !strings.EqualFold(s, header) {
			return s
		}
	}
	return ""
}
