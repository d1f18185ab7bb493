package test

import (
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func buildBinary(t *testing.T) string {
	t.Helper()
	rootDir, _ := filepath.Abs("..")
	cmdDir := filepath.Join(rootDir, "cmd", "nest-sdk-gen")

	binaryName := "nest-sdk-gen-test"
	if runtime.GOOS == "windows" {
		binaryName += ".exe"
	}
	binaryPath := filepath.Join(t.TempDir(), binaryName)

	t.Logf("Building application from %s...", cmdDir)
	buildCmd := exec.Command("go", "build", "-o", binaryPath, ".")
	buildCmd.Dir = cmdDir
	buildCmd.Stdout = os.Stdout
	buildCmd.Stderr = os.Stderr
	if err := buildCmd.Run(); err != nil {
		t.Fatalf("Failed to build application: %v", err)
	}
	return binaryPath
}

func copyTree(t *testing.T, src, dst string) {
	t.Helper()
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(src, path)
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0644)
	})
	if err != nil {
		t.Fatalf("Failed to copy %s: %v", src, err)
	}
}

func TestSystemIntegration(t *testing.T) {
	binaryPath := buildBinary(t)

	sampleDir, _ := filepath.Abs("../testdata/nest_sample")
	workDir := t.TempDir()
	copyTree(t, sampleDir, workDir)

	// Run from a nested directory: the config file is found by walking up
	nested := filepath.Join(workDir, "src", "users")
	dumpPath := filepath.Join(workDir, "descriptors.yaml")

	t.Log("Running application binary...")
	runCmd := exec.Command(binaryPath, "-no-progress", "-report", "excel,word,html,openapi", "-dump", dumpPath)
	runCmd.Dir = nested
	output, err := runCmd.CombinedOutput()
	t.Logf("Output:\n%s", output)
	if err != nil {
		t.Fatalf("Application run failed: %v", err)
	}

	outputDir := filepath.Join(workDir, "client", "src", "app", "api")
	expectedFiles := []string{
		"base-client.ts",
		"orders-client.service.ts",
		"users-client.service.ts",
		"nest-sdk-gen.log",
		"nest-sdk-gen-report.xlsx",
		"nest-sdk-gen-report.docx",
		"nest-sdk-gen-report.html",
		"openapi.json",
	}
	for _, f := range expectedFiles {
		info, err := os.Stat(filepath.Join(outputDir, f))
		if os.IsNotExist(err) {
			t.Errorf("Expected output file missing: %s", f)
		} else if info.Size() == 0 {
			t.Errorf("Output file is empty: %s", f)
		} else {
			t.Logf("Verified output: %s (%d bytes)", f, info.Size())
		}
	}

	verifyReport(t, filepath.Join(outputDir, "nest-sdk-gen-report.xlsx"))

	logContent, _ := os.ReadFile(filepath.Join(outputDir, "nest-sdk-gen.log"))
	if !strings.Contains(string(logContent), "[SKIP] UsersController.audit: not public") {
		t.Errorf("log file does not record the skipped handler:\n%s", logContent)
	}

	// -descriptors feeds the dumped YAML back in and must give the same clients
	before, _ := os.ReadFile(filepath.Join(outputDir, "orders-client.service.ts"))
	replay := exec.Command(binaryPath, "-no-progress", "-descriptors", dumpPath)
	replay.Dir = workDir
	if out, err := replay.CombinedOutput(); err != nil {
		t.Fatalf("Replay from descriptors failed: %v\n%s", err, out)
	}
	after, _ := os.ReadFile(filepath.Join(outputDir, "orders-client.service.ts"))
	if string(before) != string(after) {
		t.Error("orders client differs when generated from descriptors")
	}
}

func TestSystemInvalidConfigExitCode(t *testing.T) {
	binaryPath := buildBinary(t)

	workDir := t.TempDir()
	configPath := filepath.Join(workDir, "nest-sdk-gen.config.json")
	if err := os.WriteFile(configPath, []byte(`{ "config": { "paths": ["src/**/*.ts"] } }`), 0644); err != nil {
		t.Fatal(err)
	}

	runCmd := exec.Command(binaryPath, "-config", configPath)
	output, err := runCmd.CombinedOutput()

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
		t.Fatalf("Expected exit code 1, got %v\n%s", err, output)
	}
	if !strings.Contains(string(output), "config.outputPath") {
		t.Errorf("Output does not name the missing setting:\n%s", output)
	}

	entries, _ := os.ReadDir(workDir)
	if len(entries) != 1 {
		t.Errorf("A failed run must not write anything, found %d entries", len(entries))
	}
}

// verifyReport runs the report verification script against a workbook
func verifyReport(t *testing.T, excelPath string) {
	t.Helper()
	rootDir, _ := filepath.Abs("..")
	cmd := exec.Command("go", "run", filepath.Join(rootDir, "scripts", "verify_report.go"), excelPath)
	cmd.Dir = rootDir
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Errorf("Report verification failed: %v\nOutput: %s", err, output)
	} else {
		t.Logf("Report verification passed: %s", output)
	}
}
