/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/ssargent/fieldsheet/cmd/fieldsheet/cmd"
	"github.com/ssargent/fieldsheet/pkg/di"
)

func main() {
	// Initialize dependency injection container
	container := di.NewContainer()

	// Inject dependencies into cmd package
	cmd.SetContainer(container)

	cmd.Execute()
}
