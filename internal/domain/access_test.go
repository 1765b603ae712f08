package domain

import "testing"

func TestCanRead(t *testing.T) {
	private := ResourceAccess{Owner: "u1", IsPublic: false}
	public := ResourceAccess{Owner: "u1", IsPublic: true}

	if !public.CanRead("") {
		t.Fatalf("anonymous must read public resources")
	}
	if !public.CanRead("u2") {
		t.Fatalf("any subject must read public resources")
	}
	if private.CanRead("") {
		t.Fatalf("anonymous must not read private resources")
	}
	if private.CanRead("u2") {
		t.Fatalf("non-owner must not read private resources")
	}
	if !private.CanRead("u1") {
		t.Fatalf("owner must read private resources")
	}
}

func TestCanWrite(t *testing.T) {
	public := ResourceAccess{Owner: "u1", IsPublic: true}

	if public.CanWrite("") {
		t.Fatalf("anonymous must never write")
	}
	if public.CanWrite("u2") {
		t.Fatalf("public visibility must not grant write")
	}
	if !public.CanWrite("u1") {
		t.Fatalf("owner must write")
	}
}
