// internal/platform/di/secrets.go
package di

import (
	"context"
	"log"
	"strings"

	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// resolveSecret returns the env value when set, otherwise reads the
// latest Secret Manager version of secretName. Returns "" when neither
// is available (callers run degraded).
func (inf *Infra) resolveSecret(ctx context.Context, envValue, secretName string) string {
	if v := strings.TrimSpace(envValue); v != "" {
		return v
	}
	if inf == nil || inf.SecretManager == nil {
		return ""
	}

	name := strings.TrimSpace(secretName)
	if name == "" {
		return ""
	}
	fullName := "projects/" + inf.ProjectID + "/secrets/" + name + "/versions/latest"

	resp, err := inf.SecretManager.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: fullName,
	})
	if err != nil {
		log.Printf("[di.secrets] WARN: AccessSecretVersion failed name=%s err=%v", fullName, err)
		return ""
	}
	if resp == nil || resp.Payload == nil {
		return ""
	}
	return strings.TrimSpace(string(resp.Payload.Data))
}
