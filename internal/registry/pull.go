package registry

import (
	"fmt"
	"net/url"
	"strings"
)

func PullCommand(registryURL, repository, tag string) string {
	return fmt.Sprintf("docker pull %s", PullReference(registryURL, repository, tag))
}

// PullReference renders host/repository:tag, leaving out the host when the
// registry address is unknown.
func PullReference(registryURL, repository, tag string) string {
	host := Host(registryURL)
	repository = strings.Trim(repository, " /")
	if tag == "" {
		tag = "latest"
	}
	if host == "" {
		return fmt.Sprintf("%s:%s", repository, tag)
	}
	return fmt.Sprintf("%s/%s:%s", host, repository, tag)
}

// Host extracts host[:port] from a registry address with or without scheme.
func Host(registryURL string) string {
	registryURL = strings.TrimSpace(registryURL)
	if registryURL == "" {
		return ""
	}
	if parsed, err := url.Parse(registryURL); err == nil && parsed.Host != "" {
		registryURL = parsed.Host
	}
	registryURL = strings.Trim(registryURL, "/")
	if slash := strings.Index(registryURL, "/"); slash >= 0 {
		registryURL = registryURL[:slash]
	}
	return registryURL
}
