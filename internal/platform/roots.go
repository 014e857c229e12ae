package platform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"

	"github.com/fenilsonani/wordguard/internal/security"
)

// excludedFS are filesystem types never offered as scan roots: network
// shares, optical media and kernel pseudo filesystems.
var excludedFS = map[string]bool{
	// network
	"nfs": true, "nfs4": true, "cifs": true, "smbfs": true, "smb3": true,
	"fuse.sshfs": true, "sshfs": true, "9p": true, "afpfs": true, "webdav": true,
	"davfs": true, "fuse.davfs2": true, "ncpfs": true,
	// optical
	"iso9660": true, "udf": true, "cd9660": true,
	// pseudo
	"proc": true, "sysfs": true, "devtmpfs": true, "devpts": true, "tmpfs": true,
	"cgroup": true, "cgroup2": true, "securityfs": true, "debugfs": true,
	"tracefs": true, "configfs": true, "fusectl": true, "mqueue": true,
	"hugetlbfs": true, "pstore": true, "bpf": true, "binfmt_misc": true,
	"autofs": true, "overlay": true, "squashfs": true, "nsfs": true,
	"ramfs": true, "rpc_pipefs": true, "efivarfs": true, "devfs": true,
	"nullfs": true,
}

// Partition is one mounted filesystem
type Partition struct {
	Device     string
	Mountpoint string
	Fstype     string
}

// PartitionLister lists mounted filesystems
type PartitionLister func(ctx context.Context) ([]Partition, error)

// SystemPartitions lists the physical partitions known to the OS
func SystemPartitions(ctx context.Context) ([]Partition, error) {
	stats, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list partitions: %w", err)
	}

	parts := make([]Partition, 0, len(stats))
	for _, s := range stats {
		parts = append(parts, Partition{
			Device:     s.Device,
			Mountpoint: s.Mountpoint,
			Fstype:     s.Fstype,
		})
	}
	return parts, nil
}

// Roots returns the mountpoints of local fixed and removable drives that are
// ready to be read, with nested mountpoints collapsed into their parent.
func Roots(ctx context.Context) ([]string, error) {
	return RootsFrom(ctx, SystemPartitions)
}

// RootsFrom is Roots over an arbitrary partition source
func RootsFrom(ctx context.Context, list PartitionLister) ([]string, error) {
	parts, err := list(ctx)
	if err != nil {
		return nil, err
	}

	var roots []string
	for _, p := range parts {
		if !IsScannableFS(p.Fstype) {
			continue
		}
		if !isReady(p.Mountpoint) {
			continue
		}
		roots = append(roots, p.Mountpoint)
	}

	return CollapseRoots(roots), nil
}

// IsScannableFS reports whether a filesystem type is a local disk
func IsScannableFS(fstype string) bool {
	fstype = strings.ToLower(fstype)
	if fstype == "" {
		return false
	}
	if strings.HasPrefix(fstype, "fuse.") && fstype != "fuse.ntfs-3g" && fstype != "fuse.exfat" {
		return false
	}
	return !excludedFS[fstype]
}

// isReady reports whether the mountpoint can be listed
func isReady(mountpoint string) bool {
	info, err := os.Stat(mountpoint)
	return err == nil && info.IsDir()
}

// CollapseRoots cleans roots, drops duplicates and drops any root inside
// another, so no tree is walked twice. The result is sorted.
func CollapseRoots(roots []string) []string {
	cleaned := make([]string, 0, len(roots))
	for _, r := range roots {
		if r == "" {
			continue
		}
		if abs, err := filepath.Abs(r); err == nil {
			r = abs
		}
		cleaned = append(cleaned, filepath.Clean(r))
	}
	sort.Strings(cleaned)

	var out []string
	for _, r := range cleaned {
		nested := false
		for _, kept := range out {
			if security.IsWithin(r, kept) {
				nested = true
				break
			}
		}
		if !nested {
			out = append(out, r)
		}
	}
	return out
}
