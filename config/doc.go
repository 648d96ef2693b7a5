/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config loads poseimport settings from defaults, an optional YAML
// file, .env files and the environment, in that order.
package config
