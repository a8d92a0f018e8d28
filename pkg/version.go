package kith

const Version = "0.3.0"
