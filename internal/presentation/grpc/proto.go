package grpc

// proto.go holds the hand-maintained service descriptor for
// farmcred.scoring.v1.CreditScoringService. Messages travel with the JSON
// codec registered in json_codec.go.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const serviceName = "farmcred.scoring.v1.CreditScoringService"

// CreditScoringServiceServer is the server API for CreditScoringService.
type CreditScoringServiceServer interface {
	ScoreFarmer(context.Context, *ScoreFarmerRequest) (*ScoreFarmerResponse, error)
	AssessLoanApplication(context.Context, *AssessLoanApplicationRequest) (*AssessLoanApplicationResponse, error)
	GetAssessment(context.Context, *GetAssessmentRequest) (*GetAssessmentResponse, error)
	ListFarmerAssessments(context.Context, *ListFarmerAssessmentsRequest) (*ListFarmerAssessmentsResponse, error)
	mustEmbedUnimplementedCreditScoringServiceServer()
}

// UnimplementedCreditScoringServiceServer provides forward-compatible default implementations.
type UnimplementedCreditScoringServiceServer struct{}

func (UnimplementedCreditScoringServiceServer) ScoreFarmer(context.Context, *ScoreFarmerRequest) (*ScoreFarmerResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ScoreFarmer not implemented")
}
func (UnimplementedCreditScoringServiceServer) AssessLoanApplication(context.Context, *AssessLoanApplicationRequest) (*AssessLoanApplicationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AssessLoanApplication not implemented")
}
func (UnimplementedCreditScoringServiceServer) GetAssessment(context.Context, *GetAssessmentRequest) (*GetAssessmentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetAssessment not implemented")
}
func (UnimplementedCreditScoringServiceServer) ListFarmerAssessments(context.Context, *ListFarmerAssessmentsRequest) (*ListFarmerAssessmentsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListFarmerAssessments not implemented")
}
func (UnimplementedCreditScoringServiceServer) mustEmbedUnimplementedCreditScoringServiceServer() {}

// RegisterCreditScoringServiceServer registers the service with the gRPC server.
func RegisterCreditScoringServiceServer(s grpclib.ServiceRegistrar, srv CreditScoringServiceServer) {
	s.RegisterService(&_CreditScoringService_serviceDesc, srv)
}

var _CreditScoringService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*CreditScoringServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "ScoreFarmer", Handler: _CreditScoringService_ScoreFarmer_Handler},
		{MethodName: "AssessLoanApplication", Handler: _CreditScoringService_AssessLoanApplication_Handler},
		{MethodName: "GetAssessment", Handler: _CreditScoringService_GetAssessment_Handler},
		{MethodName: "ListFarmerAssessments", Handler: _CreditScoringService_ListFarmerAssessments_Handler},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "farmcred/scoring/v1/scoring.proto",
}

func _CreditScoringService_ScoreFarmer_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ScoreFarmerRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditScoringServiceServer).ScoreFarmer(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/ScoreFarmer"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditScoringServiceServer).ScoreFarmer(ctx, req.(*ScoreFarmerRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _CreditScoringService_AssessLoanApplication_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(AssessLoanApplicationRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditScoringServiceServer).AssessLoanApplication(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/AssessLoanApplication"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditScoringServiceServer).AssessLoanApplication(ctx, req.(*AssessLoanApplicationRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _CreditScoringService_GetAssessment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetAssessmentRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditScoringServiceServer).GetAssessment(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/GetAssessment"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditScoringServiceServer).GetAssessment(ctx, req.(*GetAssessmentRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _CreditScoringService_ListFarmerAssessments_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ListFarmerAssessmentsRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditScoringServiceServer).ListFarmerAssessments(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/ListFarmerAssessments"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditScoringServiceServer).ListFarmerAssessments(ctx, req.(*ListFarmerAssessmentsRequest))
	}
	return interceptor(ctx, req, info, handler)
}
