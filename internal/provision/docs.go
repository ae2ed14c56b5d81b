package provision

import (
	"fmt"
	"os"
)

const developmentDoc = `# Komodo Periphery Add-on Development

## Development Setup

### Prerequisites
- Docker and Docker Compose
- Git
- Visual Studio Code (recommended)

### Installation
` + "```bash" + `
# Development environment (default)
komodosetup --dev

# Production deployment files
komodosetup --production
` + "```" + `

### Platform-Specific Notes

#### Linux
- Package manager detection (apt, yum/dnf, pacman, zypper)
- Automatic Docker service configuration
- User added to docker group

#### macOS
- Requires Homebrew
- Docker Desktop installation check
- Xcode Command Line Tools may be needed

#### Windows
- Docker Desktop for Windows
- WSL2 recommended for performance
- Git for Windows

### Development Workflow
1. Make changes to configuration or scripts
2. Test locally: ` + "`komodosetup --dev`" + `
3. Build and test: ` + "`docker build -t komodo-periphery .`" + `
4. Submit pull request

### Architecture Support
- amd64 (x86_64)
- aarch64 (ARM64)
- armv7 (ARM 32-bit)
- armhf (ARM hard-float)
- i386 (x86 32-bit)

### Directory Structure
` + "```" + `
komodo_periphery/
├── config.yaml              # Add-on configuration
├── Dockerfile               # Container definition
├── README.md                # User documentation
├── icon.svg                 # Add-on icon (128x128)
├── rootfs/                  # Container filesystem
│   └── etc/services.d/
│       └── komodo-periphery/
│           ├── run          # S6 service script
│           └── finish       # S6 cleanup script
├── translations/            # UI translations
│   └── en.yaml
└── .devcontainer/           # VS Code devcontainer
` + "```" + `
`

// writeDocumentation regenerates DEVELOPMENT.md, always overwriting.
func (s *Service) writeDocumentation() error {
	s.Reporter.Info("Creating development documentation...")

	if err := os.WriteFile(s.Paths.DocFile, []byte(developmentDoc), 0o644); err != nil {
		return fmt.Errorf("write documentation: %w", err)
	}

	s.Reporter.Info("Development documentation created.")
	s.Logger.Printf("wrote %s", s.Paths.DocFile)
	return nil
}
