package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/apac-ml-tfc/forecast-poc/internal/provisioning"
)

// Destroy handles the destroy command.
//
// It loads the environment configuration and deletes the CloudFormation
// stack, which removes the notebook instance and its execution role.
// Destroying an environment that does not exist is a no-op.
func Destroy(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	log.Printf("Destroying environment stack: %s", cfg.StackName)

	pCtx, err := newContext(ctx, cfg)
	if err != nil {
		return err
	}

	if err := provisioning.RunPhases(pCtx, []provisioning.Phase{provisioning.NewDestroyPhase()}); err != nil {
		return fmt.Errorf("destroy failed: %w", err)
	}

	log.Printf("Stack %s destroyed", cfg.StackName)
	return nil
}
