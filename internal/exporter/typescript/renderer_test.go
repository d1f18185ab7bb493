package typescript

import (
	"bytes"
	"strings"
	"testing"

	"nest-sdk-gen/internal/model"
)

func sampleFile() *model.ClientFile {
	return &model.ClientFile{
		Controller: "UsersController",
		ClassName:  "UsersClient",
		FileName:   "users-client.service.ts",
		ProvidedIn: "'root'",
		Imports: []model.ImportDecl{
			{Module: "../dto/user.dto", Named: []string{"CreateUserDto", "UserDto"}},
			{Module: "../filters", Namespace: "filters"},
			{Module: "./base-client", Named: []string{"BaseClient"}},
			{Module: "@angular/common/http", Named: []string{"HttpClient"}},
			{Module: "@angular/core", Named: []string{"Injectable"}},
			{Module: "rxjs", Named: []string{"Observable"}},
		},
		Methods: []model.ClientMethod{
			{
				Name:         "findOne",
				Params:       []model.ClientParam{{Name: "id", Type: "string"}},
				ResponseType: "UserDto",
				Statements: []string{
					"const url = `/api/users/${id}`;",
					"return this.request<UserDto>('GET', url);",
				},
			},
			{
				Name: "find",
				Overloads: []model.ClientSignature{
					{ResponseType: "UserDto[]"},
					{Params: []model.ClientParam{{Name: "name", Type: "string"}}, ResponseType: "UserDto"},
				},
				Params:       []model.ClientParam{{Name: "name", Type: "string", Optional: true}},
				ResponseType: "UserDto | UserDto[]",
				Statements: []string{
					"const url = `/api/users`;",
					"const query = { name };",
					"return this.request<UserDto | UserDto[]>('GET', url, { query });",
				},
			},
		},
	}
}

const expectedSource = `// Generated by nest-sdk-gen. Do not edit.
import { CreateUserDto, UserDto } from '../dto/user.dto';
import * as filters from '../filters';
import { BaseClient } from './base-client';
import { HttpClient } from '@angular/common/http';
import { Injectable } from '@angular/core';
import { Observable } from 'rxjs';

@Injectable({ providedIn: 'root' })
export class UsersClient extends BaseClient {
  constructor(protected httpClient: HttpClient) {
    super();
  }

  findOne(id: string) {
    const url = ` + "`/api/users/${id}`" + `;
    return this.request<UserDto>('GET', url);
  }

  find(): Observable<UserDto[]>;
  find(name: string): Observable<UserDto>;
  find(name?: string): Observable<UserDto | UserDto[]> {
    const url = ` + "`/api/users`" + `;
    const query = { name };
    return this.request<UserDto | UserDto[]>('GET', url, { query });
  }
}
`

func TestRender(t *testing.T) {
	got := string(Render(sampleFile()))
	if got != expectedSource {
		t.Errorf("Render mismatch.\n--- got ---\n%s\n--- expected ---\n%s", got, expectedSource)
	}
}

func TestRenderIsByteIdentical(t *testing.T) {
	first := Render(sampleFile())
	second := Render(sampleFile())
	if !bytes.Equal(first, second) {
		t.Error("Rendering the same file twice produced different bytes")
	}
}

func TestRenderWithoutProvider(t *testing.T) {
	file := &model.ClientFile{ClassName: "HealthClient"}
	got := string(Render(file))

	if !strings.Contains(got, "@Injectable()\nexport class HealthClient extends BaseClient {") {
		t.Errorf("Unexpected class header:\n%s", got)
	}
	if strings.Contains(got, "\r") || strings.Contains(got, "\t") {
		t.Error("Output must use LF line endings and space indentation")
	}
}

func TestBaseClient(t *testing.T) {
	src := string(BaseClient())
	for _, want := range []string{
		"export abstract class BaseClient",
		"protected abstract httpClient: HttpClient;",
		"protected request<T = any>(method: string, url: string, options: RequestOptions = {}): Observable<T>",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("base client is missing %q", want)
		}
	}
}
