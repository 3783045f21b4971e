package domain

// FactBag is an immutable snapshot of host facts gathered once at startup.
// There is no refresh operation; construct a new process to get new facts.
type FactBag struct {
	osName    string
	arch      string
	shellPath string
	cpuCount  int
	hostname  string
	username  string
}

// NewFactBag builds the snapshot. Callers collect the values once and never
// mutate them afterwards.
func NewFactBag(osName, arch, shellPath string, cpuCount int, hostname, username string) FactBag {
	return FactBag{
		osName:    osName,
		arch:      arch,
		shellPath: shellPath,
		cpuCount:  cpuCount,
		hostname:  hostname,
		username:  username,
	}
}

func (f FactBag) OSName() string    { return f.osName }
func (f FactBag) Arch() string      { return f.arch }
func (f FactBag) ShellPath() string { return f.shellPath }
func (f FactBag) CPUCount() int     { return f.cpuCount }
func (f FactBag) Hostname() string  { return f.hostname }
func (f FactBag) Username() string  { return f.username }
