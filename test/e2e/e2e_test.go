package e2e

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nest-sdk-gen/internal/analyzer"
	"nest-sdk-gen/internal/config"
	"nest-sdk-gen/internal/exporter"
	"nest-sdk-gen/internal/generator"
	"nest-sdk-gen/internal/model"
)

// copySample copies testdata/nest_sample into a temp dir so runs never
// write into the repository
func copySample(t *testing.T) string {
	t.Helper()
	src, _ := filepath.Abs("../../testdata/nest_sample")
	dst := t.TempDir()

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
		t.Fatalf("Failed to copy sample: %v", err)
	}
	return dst
}

func runOnce(t *testing.T, root string) (*config.Config, *generator.Result) {
	t.Helper()

	cfg, err := config.Load(filepath.Join(root, "nest-sdk-gen.config.json"))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	controllers, err := analyzer.New(&cfg).Analyze()
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	tsconfig, err := analyzer.ReadTSConfig(cfg.TSConfigPath())
	if err != nil {
		t.Fatalf("ReadTSConfig failed: %v", err)
	}

	result, err := generator.Generate(&cfg, controllers, tsconfig)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if err := cfg.EnsureOutputDir(); err != nil {
		t.Fatal(err)
	}
	if err := generator.Write(generator.NewFilesystemSink(cfg.OutputDir()), result.Artifacts); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	return &cfg, result
}

func readOutput(t *testing.T, cfg *config.Config, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(cfg.OutputDir(), name))
	if err != nil {
		t.Fatalf("Expected output file missing: %s", name)
	}
	return string(data)
}

func TestEndToEndFlow(t *testing.T) {
	root := copySample(t)
	cfg, result := runOnce(t, root)

	t.Logf("Generated %d files", len(result.Artifacts))

	// Controllers are processed in lower-cased path order
	if len(result.Files) != 2 || result.Files[0].ClassName != "OrdersClient" || result.Files[1].ClassName != "UsersClient" {
		t.Fatalf("Unexpected clients: %+v", result.Files)
	}

	users := readOutput(t, cfg, "users-client.service.ts")
	for _, want := range []string{
		"import { API_CONFIG } from './api-config';",
		"import { CreateUserDto, UserDto } from '../../../../src/users/dto/user.dto';",
		"@Injectable({ providedIn: 'root' })",
		"export class UsersClient extends BaseClient {",
		"  findOne(id: string) {\n    const url = `/api/users/${id}`;\n    return this.request<UserDto>('GET', url);\n  }",
		"  create(payload: CreateUserDto, notify?: boolean) {\n    const url = `/api/users`;\n    const query = { notify };\n    return this.request('POST', url, { query, body: payload });\n  }",
	} {
		if !strings.Contains(users, want) {
			t.Errorf("users client is missing:\n%s\n--- got ---\n%s", want, users)
		}
	}
	if strings.Contains(users, "audit") || strings.Contains(users, "@Param") {
		t.Error("users client leaks private handlers or decorators")
	}

	orders := readOutput(t, cfg, "orders-client.service.ts")
	for _, want := range []string{
		"import { Page } from '../../../../src/common/page';",
		"import { OrderDto, OrderFilter } from '../../../../src/orders/order.dto';",
		"const query = { ...filter, 'page-size': pageSize };",
		"return this.request<Page<OrderDto>>('GET', url, { query });",
		"const url = `/api/orders/${id}/status`;",
		"return this.request<OrderDto>('PUT', url, { body: { status } });",
		"return this.request('DELETE', url);",
	} {
		if !strings.Contains(orders, want) {
			t.Errorf("orders client is missing:\n%s\n--- got ---\n%s", want, orders)
		}
	}
	if strings.Contains(orders, "internalSync") || strings.Contains(orders, "exportCsv") {
		t.Error("excluded handlers must not be generated")
	}

	if base := readOutput(t, cfg, "base-client.ts"); !strings.Contains(base, "export abstract class BaseClient") {
		t.Error("base-client.ts has unexpected content")
	}

	if result.Summary.TotalSkipped != 3 {
		t.Errorf("TotalSkipped = %d, expected 3", result.Summary.TotalSkipped)
	}
}

func TestEndToEndIdempotent(t *testing.T) {
	root := copySample(t)
	cfg, first := runOnce(t, root)

	before := make(map[string][]byte)
	for _, a := range first.Artifacts {
		before[a.Path] = []byte(readOutput(t, cfg, a.Path))
	}

	_, second := runOnce(t, root)
	for _, a := range second.Artifacts {
		if !bytes.Equal(before[a.Path], []byte(readOutput(t, cfg, a.Path))) {
			t.Errorf("%s changed between identical runs", a.Path)
		}
	}
}

func TestEndToEndReports(t *testing.T) {
	root := copySample(t)
	cfg, result := runOnce(t, root)

	for _, exp := range exporter.GetExporters([]string{"excel", "word", "html", "openapi"}, "") {
		if err := exp.Export(result.Summary, result.Files, cfg); err != nil {
			t.Errorf("Export failed: %v", err)
		}
	}

	for _, f := range []string{
		config.ReportBaseName + ".xlsx",
		config.ReportBaseName + ".docx",
		config.ReportBaseName + ".html",
		"openapi.json",
	} {
		info, err := os.Stat(filepath.Join(cfg.OutputDir(), f))
		if err != nil {
			t.Errorf("Expected report missing: %s", f)
		} else if info.Size() == 0 {
			t.Errorf("Report is empty: %s", f)
		} else {
			t.Logf("Verified report: %s (%d bytes)", f, info.Size())
		}
	}
}

func TestDescriptorRoundTrip(t *testing.T) {
	root := copySample(t)
	cfg, err := config.Load(filepath.Join(root, "nest-sdk-gen.config.json"))
	if err != nil {
		t.Fatal(err)
	}
	controllers, err := analyzer.New(&cfg).Analyze()
	if err != nil {
		t.Fatal(err)
	}

	dump := filepath.Join(root, "descriptors.yaml")
	if err := model.WriteDescriptors(dump, controllers); err != nil {
		t.Fatalf("WriteDescriptors failed: %v", err)
	}
	loaded, err := model.LoadDescriptors(dump)
	if err != nil {
		t.Fatalf("LoadDescriptors failed: %v", err)
	}

	direct, err := generator.Generate(&cfg, controllers, nil)
	if err != nil {
		t.Fatal(err)
	}
	viaYAML, err := generator.Generate(&cfg, loaded, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := range direct.Artifacts {
		if !bytes.Equal(direct.Artifacts[i].Content, viaYAML.Artifacts[i].Content) {
			t.Errorf("%s differs when generated from YAML descriptors", direct.Artifacts[i].Path)
		}
	}
}

func TestMissingOutputPathWritesNothing(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "nest-sdk-gen.config.json")
	os.WriteFile(path, []byte(`{ "config": { "paths": ["src/**/*.ts"] } }`), 0644)

	_, err := config.Load(path)
	var valErr *config.ValidationError
	if !errors.As(err, &valErr) || !valErr.HasField("config.outputPath") {
		t.Fatalf("Expected a validation error naming outputPath, got %v", err)
	}

	entries, _ := os.ReadDir(root)
	if len(entries) != 1 {
		t.Errorf("Nothing but the config may exist, found %d entries", len(entries))
	}
}
