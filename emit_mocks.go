// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package zudd is a generated GoMock package.
package zudd

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockEmitter is a mock of Emitter interface.
type MockEmitter struct {
	ctrl     *gomock.Controller
	recorder *MockEmitterMockRecorder
	isgomock struct{}
}

// MockEmitterMockRecorder is the mock recorder for MockEmitter.
type MockEmitterMockRecorder struct {
	mock *MockEmitter
}

// NewMockEmitter creates a new mock instance.
func NewMockEmitter(ctrl *gomock.Controller) *MockEmitter {
	mock := &MockEmitter{ctrl: ctrl}
	mock.recorder = &MockEmitterMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockEmitter) EXPECT() *MockEmitterMockRecorder {
	return m.recorder
}

// Node mocks base method.
func (m *MockEmitter) Node(id, level, variable int, then, els Child) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Node", id, level, variable, then, els)
	ret0, _ := ret[0].(error)
	return ret0
}

// Node indicates an expected call of Node.
func (mr *MockEmitterMockRecorder) Node(id, level, variable, then, els any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Node", reflect.TypeOf((*MockEmitter)(nil).Node), id, level, variable, then, els)
}
