package deps

import (
	"os/exec"
	"strings"
)

// Status represents the installation status of an external tool dependency
type Status struct {
	Installed bool
	Path      string
	Version   string
}

// CheckFFmpeg checks if ffmpeg is installed and returns its status
func CheckFFmpeg() Status {
	return checkTool("ffmpeg", "-version")
}

// CheckFFprobe checks if ffprobe is installed and returns its status
func CheckFFprobe() Status {
	return checkTool("ffprobe", "-version")
}

func checkTool(name, versionFlag string) Status {
	path, err := exec.LookPath(name)
	if err != nil {
		return Status{Installed: false}
	}

	status := Status{
		Installed: true,
		Path:      path,
	}

	// first output line carries the version info
	cmd := exec.Command(path, versionFlag)
	output, err := cmd.Output()
	if err == nil {
		lines := strings.Split(string(output), "\n")
		if len(lines) > 0 {
			status.Version = strings.TrimSpace(lines[0])
		}
	}

	return status
}
