package app

import (
	"strings"
	"testing"
)

func service(name string, pid uint32, exe string, objects map[string][]string) *Service {
	if objects == nil {
		objects = map[string][]string{}
	}
	return &Service{
		Name:          name,
		Activated:     true,
		Pid:           pid,
		HasPid:        true,
		Executable:    exe,
		HasExecutable: true,
		Objects:       objects,
	}
}

func TestReportGroupsByPid(t *testing.T) {
	services := []*Service{
		service("A", 100, "/usr/bin/foo", map[string][]string{"/": {"org.freedesktop.DBus.Peer"}}),
		service("B", 100, "/usr/bin/foo", map[string][]string{"/": {"org.freedesktop.DBus.Peer"}}),
		service("C", 200, "/usr/bin/bar", map[string][]string{"/": {"org.freedesktop.DBus.Peer"}}),
	}

	var sb strings.Builder
	newTestApp(nil).Report(&sb, services, Filters{}, false)

	want := "A\n" +
		"B\n" +
		"  Cmd line: /usr/bin/foo (Pid: 100)\n" +
		"  /\n" +
		"    org.freedesktop.DBus.Peer\n" +
		"\n" +
		"C\n" +
		"  Cmd line: /usr/bin/bar (Pid: 200)\n" +
		"  /\n" +
		"    org.freedesktop.DBus.Peer\n" +
		"\n"
	if sb.String() != want {
		t.Fatalf("unexpected report:\n%q\nwant:\n%q", sb.String(), want)
	}
}

func TestReportAliasBypassesFilters(t *testing.T) {
	// B fails the object filter but shares A's process, so its name
	// still appears inside A's block and it is never rendered alone.
	services := []*Service{
		service("A", 100, "/usr/bin/foo", map[string][]string{"/Foo": {"org.Y"}}),
		service("B", 100, "/usr/bin/foo", map[string][]string{"/Other": {"org.Z"}}),
	}

	var sb strings.Builder
	newTestApp(nil).Report(&sb, services, Filters{Object: "/Foo"}, false)

	out := sb.String()
	if !strings.Contains(out, "A\nB\n") {
		t.Fatalf("expected B listed as alias under A, got:\n%s", out)
	}
	if strings.Contains(out, "/Other") {
		t.Fatalf("B's own block must not be rendered:\n%s", out)
	}
	if strings.Count(out, "Cmd line:") != 1 {
		t.Fatalf("expected one block, got:\n%s", out)
	}
}

func TestReportUnknownExecutableSortsFirst(t *testing.T) {
	known := service("org.AAA", 10, "/usr/bin/aaa", nil)
	unknown := &Service{Name: "org.ZZZ", Activated: true, Objects: map[string][]string{}}
	services := []*Service{known, unknown}

	var sb strings.Builder
	newTestApp(nil).Report(&sb, services, Filters{}, false)

	out := sb.String()
	if strings.Index(out, "org.ZZZ") > strings.Index(out, "org.AAA") {
		t.Fatalf("unknown-executable service must sort first:\n%s", out)
	}
	if !strings.Contains(out, "  Cmd line: Unknown (Pid: Not running)\n") {
		t.Fatalf("expected unknown sentinel line:\n%s", out)
	}
}

func TestReportUnresolvedServicesShareOneBlock(t *testing.T) {
	a := &Service{Name: "org.A", Activated: true, Objects: map[string][]string{}}
	b := &Service{Name: "org.B", Activated: false, Objects: map[string][]string{}}
	services := []*Service{a, b}

	var sb strings.Builder
	newTestApp(nil).Report(&sb, services, Filters{}, false)

	out := sb.String()
	if strings.Count(out, "Cmd line:") != 1 {
		t.Fatalf("services without a pid must share one block:\n%s", out)
	}
	if !strings.Contains(out, "org.A\norg.B\n") {
		t.Fatalf("expected both names stacked:\n%s", out)
	}
}

func TestReportProcessFilterStopsAtCmdline(t *testing.T) {
	services := []*Service{
		service("org.X", 10, "/usr/bin/foo --flag", map[string][]string{"/": {"org.Y"}}),
	}

	var sb strings.Builder
	newTestApp(nil).Report(&sb, services, Filters{Process: "*foo*"}, false)

	want := "org.X\n  Cmd line: /usr/bin/foo --flag (Pid: 10)\n"
	if sb.String() != want {
		t.Fatalf("process filter without --verbose must stop after the cmd line:\n%q\nwant %q", sb.String(), want)
	}
}

func TestReportProcessFilterVerboseShowsObjects(t *testing.T) {
	services := []*Service{
		service("org.X", 10, "/usr/bin/foo", map[string][]string{"/": {"org.Y"}}),
	}

	var sb strings.Builder
	newTestApp(nil).Report(&sb, services, Filters{Process: "*foo*"}, true)

	if !strings.Contains(sb.String(), "  /\n    org.Y\n") {
		t.Fatalf("verbose process filter must keep the object detail:\n%s", sb.String())
	}
}

func TestReportProcessFilterSkipsUnknownExecutable(t *testing.T) {
	unknown := &Service{Name: "org.X", Activated: true, Objects: map[string][]string{}}

	var sb strings.Builder
	newTestApp(nil).Report(&sb, []*Service{unknown}, Filters{Process: "*"}, false)

	if !strings.Contains(sb.String(), "No DBus services found") {
		t.Fatalf("a service without an executable must never match a process filter:\n%s", sb.String())
	}
}

func TestReportObjectFilterNarrowsObjectList(t *testing.T) {
	services := []*Service{
		service("org.X", 10, "/usr/bin/foo", map[string][]string{
			"/Foo":     {"org.Y"},
			"/Foo/Bar": {},
		}),
	}

	var sb strings.Builder
	newTestApp(nil).Report(&sb, services, Filters{Object: "/Foo"}, false)

	out := sb.String()
	if !strings.Contains(out, "  /Foo\n    org.Y\n") {
		t.Fatalf("expected /Foo with its interfaces:\n%s", out)
	}
	if strings.Contains(out, "/Foo/Bar") {
		t.Fatalf("/Foo/Bar fails the object filter and must be hidden:\n%s", out)
	}
}

func TestReportInterfaceFilterNarrowsObjectList(t *testing.T) {
	services := []*Service{
		service("org.X", 10, "/usr/bin/foo", map[string][]string{
			"/Foo": {"org.Y"},
			"/Bar": {"org.Z"},
		}),
	}

	var sb strings.Builder
	newTestApp(nil).Report(&sb, services, Filters{Interface: "org.Y"}, false)

	out := sb.String()
	if !strings.Contains(out, "/Foo") || strings.Contains(out, "/Bar") {
		t.Fatalf("interface filter must narrow the object list:\n%s", out)
	}
}

func TestReportVerboseKeepsEverything(t *testing.T) {
	services := []*Service{
		service("org.X", 10, "/usr/bin/foo", map[string][]string{
			"/Foo": {"org.Y"},
			"/Bar": {"org.Z"},
		}),
	}

	var sb strings.Builder
	newTestApp(nil).Report(&sb, services, Filters{Interface: "org.Y"}, true)

	out := sb.String()
	if !strings.Contains(out, "/Foo") || !strings.Contains(out, "/Bar") {
		t.Fatalf("verbose must suppress the narrowing:\n%s", out)
	}
}

func TestReportServiceFilter(t *testing.T) {
	services := []*Service{
		service("com.example.One", 10, "/usr/bin/one", nil),
		service("org.example.Two", 20, "/usr/bin/two", nil),
	}

	var sb strings.Builder
	newTestApp(nil).Report(&sb, services, Filters{Service: "com.example.*"}, false)

	out := sb.String()
	if !strings.Contains(out, "com.example.One") || strings.Contains(out, "org.example.Two") {
		t.Fatalf("service filter applied wrongly:\n%s", out)
	}
}

func TestReportNoResults(t *testing.T) {
	services := []*Service{
		service("org.X", 10, "/usr/bin/foo", map[string][]string{"/": {"org.Y"}}),
	}

	var sb strings.Builder
	newTestApp(nil).Report(&sb, services, Filters{Interface: "net.nothing.*"}, false)

	if sb.String() != "No DBus services found with the specified filters\n" {
		t.Fatalf("expected the no-results line, got %q", sb.String())
	}
}

func TestReportRepeatedRunsResetProcessed(t *testing.T) {
	services := []*Service{
		service("A", 100, "/usr/bin/foo", map[string][]string{"/": {"org.Y"}}),
		service("B", 100, "/usr/bin/foo", map[string][]string{"/": {"org.Y"}}),
	}

	app := newTestApp(nil)
	var first, second strings.Builder
	app.Report(&first, services, Filters{}, false)
	app.Report(&second, services, Filters{}, false)

	if first.String() != second.String() {
		t.Fatalf("reporting must be repeatable:\n%q\nvs\n%q", first.String(), second.String())
	}
}
