package app

import (
	"fmt"
	"io"
	"sort"

	"dbusls/internal/match"
)

// Filters holds the user's glob patterns; an empty string means the
// filter is absent and passes everything.
type Filters struct {
	Object    string
	Interface string
	Service   string
	Process   string
}

// Report renders the filtered, grouped service list to w.
//
// Services sharing a pid are printed once, all their names stacked on
// one block. The alias scan deliberately walks the whole service-name-
// filtered list, so a service that fails the object/interface/process
// filters can still show up as a bare name line under a sibling that
// passes them.
func (a *App) Report(w io.Writer, services []*Service, f Filters, verbose bool) {
	if f.Service != "" {
		kept := make([]*Service, 0, len(services))
		for _, svc := range services {
			if match.Match(f.Service, svc.Name) {
				kept = append(kept, svc)
			}
		}
		services = kept
	}

	// Services with no resolved executable sort as the empty string,
	// which pushes them to the front regardless of name.
	sort.SliceStable(services, func(i, j int) bool {
		return sortKey(services[i]) < sortKey(services[j])
	})

	for _, svc := range services {
		svc.Processed = false
	}

	found := false
	for _, svc := range services {
		if !svc.HasObject(f.Object) || !svc.HasInterface(f.Interface) {
			continue
		}
		if f.Process != "" && !(svc.HasExecutable && match.Match(f.Process, svc.Executable)) {
			continue
		}
		found = true
		a.render(w, svc, services, f, verbose)
	}

	if !found {
		fmt.Fprintln(w, "No DBus services found with the specified filters")
	}
}

func sortKey(s *Service) string {
	if !s.HasExecutable {
		return ""
	}
	return s.Name
}

func (a *App) render(w io.Writer, svc *Service, all []*Service, f Filters, verbose bool) {
	if svc.Processed {
		return
	}

	for _, other := range all {
		if svc.SamePid(other) {
			fmt.Fprintln(w, other.Name)
			other.Processed = true
		}
	}

	if svc.HasExecutable {
		fmt.Fprintf(w, "  Cmd line: %s (Pid: %d)\n", svc.Executable, svc.Pid)
	} else {
		fmt.Fprintln(w, "  Cmd line: Unknown (Pid: Not running)")
	}

	// With a process filter the caller only wanted to know which
	// services belong to the process; details need --verbose.
	if f.Process != "" && !verbose {
		return
	}

	for _, path := range sortedPaths(svc.Objects) {
		ifaces := svc.Objects[path]
		if !verbose && f.Interface != "" && !match.AnyMatch(f.Interface, ifaces) {
			continue
		}
		if !verbose && f.Interface == "" && f.Object != "" && !match.Match(f.Object, path) {
			continue
		}
		fmt.Fprintf(w, "  %s\n", path)
		for _, iface := range ifaces {
			fmt.Fprintf(w, "    %s\n", iface)
		}
	}
	fmt.Fprintln(w)
}

func sortedPaths(objects map[string][]string) []string {
	paths := make([]string, 0, len(objects))
	for path := range objects {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
